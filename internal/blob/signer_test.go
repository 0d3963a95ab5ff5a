package blob

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSigner_VerifyRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret")
	expiresAt := time.Now().Add(time.Hour)
	expires := fmt.Sprintf("%d", expiresAt.Unix())

	sig := signer.Sign("report.csv", expiresAt)
	assert.True(t, signer.Verify("report.csv", expires, sig))
}

func TestSigner_Rejections(t *testing.T) {
	signer := NewSigner("test-secret")
	expiresAt := time.Now().Add(time.Hour)
	expires := fmt.Sprintf("%d", expiresAt.Unix())
	sig := signer.Sign("report.csv", expiresAt)

	t.Run("expired link", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		assert.False(t, signer.Verify("report.csv", fmt.Sprintf("%d", past.Unix()), signer.Sign("report.csv", past)))
	})

	t.Run("tampered signature", func(t *testing.T) {
		assert.False(t, signer.Verify("report.csv", expires, "deadbeef"))
	})

	t.Run("signature bound to key", func(t *testing.T) {
		assert.False(t, signer.Verify("other.csv", expires, sig))
	})

	t.Run("signature bound to expiry", func(t *testing.T) {
		later := fmt.Sprintf("%d", expiresAt.Add(time.Hour).Unix())
		assert.False(t, signer.Verify("report.csv", later, sig))
	})

	t.Run("non-numeric expiry", func(t *testing.T) {
		assert.False(t, signer.Verify("report.csv", "soon", sig))
	})

	t.Run("different secret", func(t *testing.T) {
		other := NewSigner("other-secret")
		assert.False(t, other.Verify("report.csv", expires, sig))
	})
}
