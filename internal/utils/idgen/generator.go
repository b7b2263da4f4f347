// Package idgen produces opaque public identifiers.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewConversationID mints a conversation identifier unique with overwhelming
// probability: a millisecond timestamp prefix plus a random suffix. The
// store's unique constraint is the real backstop, not this generator.
func NewConversationID() string {
	id, err := GenerateSecureID(fmt.Sprintf("conv_%d", time.Now().UnixMilli()), 9)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// degrade to a timestamp-only identifier rather than panicking.
		return fmt.Sprintf("conv_%d", time.Now().UnixNano())
	}
	return id
}

// GenerateSecureID returns "<prefix>_<n random chars>" over [a-z0-9].
func GenerateSecureID(prefix string, length int) (string, error) {
	suffix, err := randomSuffix(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + suffix, nil
}

// ValidateIDFormat reports whether id is "<expectedPrefix>_<suffix>" with a
// non-empty suffix drawn from the generator alphabet.
func ValidateIDFormat(id, expectedPrefix string) bool {
	want := expectedPrefix + "_"
	if !strings.HasPrefix(id, want) {
		return false
	}
	suffix := id[len(want):]
	if suffix == "" {
		return false
	}
	for _, ch := range suffix {
		if ch != '_' && !strings.ContainsRune(idAlphabet, ch) {
			return false
		}
	}
	return true
}

func randomSuffix(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(idAlphabet[n.Int64()])
	}
	return b.String(), nil
}
