package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID composes an entity ID from a type prefix, the creation timestamp
// and a random suffix. Collision-resistant for normal usage, not
// cryptographically unique.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
