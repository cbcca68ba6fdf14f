package cryptox

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ErrEmptySalt reports an attempt to hash with no salt. Hashing without a
// client-specific salt would make IP hashes linkable across clients.
var ErrEmptySalt = errors.New("cryptox: empty salt")

// HashIP computes the keyed BLAKE2b-256 digest of an IP address using the
// client's salt as the key. Tracking agents call this when the resolved
// policy sets ip_collection.hash_required; the raw address must never leave
// the agent for those privacy levels.
func HashIP(ip, salt string) (string, error) {
	if salt == "" {
		return "", ErrEmptySalt
	}
	key := []byte(salt)
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}

	h, err := blake2b.New256(key)
	if err != nil {
		return "", fmt.Errorf("cryptox: init keyed hash: %w", err)
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil)), nil
}
