package adminauth

import (
	"crypto/subtle"

	"golang.org/x/crypto/blake2b"
)

// Gate guards the admin surfaces with a single shared key. An empty configured
// key denies everyone.
type Gate struct {
	digest  [blake2b.Size256]byte
	enabled bool
}

func NewGate(key string) *Gate {
	if key == "" {
		return &Gate{}
	}
	return &Gate{digest: blake2b.Sum256([]byte(key)), enabled: true}
}

// Enabled reports whether an admin key was configured.
func (g *Gate) Enabled() bool {
	return g != nil && g.enabled
}

// Authorize compares provided against the configured key without leaking
// timing information about how many bytes matched.
func (g *Gate) Authorize(provided string) bool {
	if !g.Enabled() || provided == "" {
		return false
	}
	candidate := blake2b.Sum256([]byte(provided))
	return subtle.ConstantTimeCompare(candidate[:], g.digest[:]) == 1
}
