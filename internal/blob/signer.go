package blob

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Signer issues and verifies the time-limited signatures behind pre-signed
// download URLs. The signature binds the object key to its expiry instant.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer from the shared server secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the hex signature for key valid until expiresAt.
func (s *Signer) Sign(key string, expiresAt time.Time) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", key, expiresAt.Unix())
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the signature and that the link has not expired.
func (s *Signer) Verify(key, expires, sig string) bool {
	expUnix, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().After(time.Unix(expUnix, 0)) {
		return false
	}
	expected := s.Sign(key, time.Unix(expUnix, 0))
	return hmac.Equal([]byte(expected), []byte(sig))
}
