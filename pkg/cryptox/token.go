package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// InviteTokenBytes is the entropy of an invitation token before encoding.
// Hex encoding doubles it: 32 bytes -> 64 characters.
const InviteTokenBytes = 32

// GenerateInviteToken creates a cryptographically secure invitation token,
// hex encoded so it survives copy-paste and URL embedding untouched.
func GenerateInviteToken() (string, error) {
	buf := make([]byte, InviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate invite token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
