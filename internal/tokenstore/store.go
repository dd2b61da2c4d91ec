// Package tokenstore keeps small string values, such as the API bearer
// token, between runs of the CLI.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"

	"parking-api/config"
)

// Store is a scoped key-value store. Get returns "" for missing keys.
type Store interface {
	Get(key string) string
	Set(key, value string) error
	Delete(key string) error
}

// Open builds the store selected by cfg.Driver.
func Open(cfg config.TokenStoreConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(0), nil
	case "file", "":
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = DefaultPath(); err != nil {
				return nil, err
			}
		}
		return NewFile(path, cfg.Scope), nil
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.Scope), nil
	default:
		return nil, fmt.Errorf("unknown token store driver %q", cfg.Driver)
	}
}

// DefaultPath returns the per-user token file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "parkingctl", "tokens.yaml"), nil
}
