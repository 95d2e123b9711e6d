package token

import (
	"crypto/rand"
	"encoding/base64"
)

// NewOpaque returns a 256-bit random value encoded as unpadded
// base64url. Guests hold nothing but this string, so its entropy is the
// entire access control: never replace with sequential or
// timestamp-derived identifiers.
func NewOpaque() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
