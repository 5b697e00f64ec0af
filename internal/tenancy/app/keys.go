package app

import (
	"crypto/ed25519"
	"fmt"
	"log/slog"
	"os"

	"github.com/keyhold/keyhold/pkg/cryptox"
)

// loadOrGenerateSessionKey returns the Ed25519 session signing key, creating
// and persisting one on first start so sessions survive restarts.
func loadOrGenerateSessionKey(path string, logger *slog.Logger) (ed25519.PrivateKey, error) {
	pemKey, err := os.ReadFile(path)
	if err == nil {
		key, err := cryptox.ParseEd25519Key(pemKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session key %s: %w", path, err)
		}
		logger.Info("session signing key loaded", "path", path)
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session key %s: %w", path, err)
	}

	pemKey, err = cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, pemKey, 0600); err != nil {
		return nil, fmt.Errorf("failed to write session key %s: %w", path, err)
	}

	key, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, err
	}

	logger.Info("session signing key generated", "path", path)
	return key, nil
}
