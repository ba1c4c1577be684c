package auth

import "golang.org/x/crypto/bcrypt"

// APIKeyVerifier compares presented API keys against a bcrypt hash
// configured at deploy time.
type APIKeyVerifier struct {
	hash []byte
}

// NewAPIKeyVerifier builds a verifier. An empty hash disables API key auth.
func NewAPIKeyVerifier(hash string) *APIKeyVerifier {
	return &APIKeyVerifier{hash: []byte(hash)}
}

// Enabled reports whether an API key hash is configured.
func (v *APIKeyVerifier) Enabled() bool {
	return len(v.hash) > 0
}

// Verify reports whether the presented key matches the configured hash.
func (v *APIKeyVerifier) Verify(key string) bool {
	if !v.Enabled() || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(key)) == nil
}
