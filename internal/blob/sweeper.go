package blob

import (
	"context"
	"log"
	"time"
)

const (
	sweepInterval = time.Hour
	maxObjectAge  = 24 * time.Hour
)

// Sweeper periodically deletes objects older than 24 hours. It is the
// durable backstop behind the per-export deletion timers, which are
// process-local and lost on restart.
type Sweeper struct {
	store Store
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(store Store) *Sweeper {
	return &Sweeper{store: store}
}

// Run sweeps hourly until ctx is cancelled. It performs one sweep
// immediately on start to catch objects orphaned by an earlier restart.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	objects, err := s.store.List(ctx)
	if err != nil {
		log.Printf("export sweep: list objects: %v", err)
		return
	}
	cutoff := time.Now().Add(-maxObjectAge)
	removed := 0
	for _, obj := range objects {
		if obj.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, obj.Key); err != nil {
			log.Printf("export sweep: delete %s: %v", obj.Key, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("export sweep: removed %d expired objects", removed)
	}
}
