package toml

import "fmt"

const currentVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
}

type sessionSchema struct {
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token"`
	ExpiresAt    string `toml:"expires_at"`
	UserID       string `toml:"user_id"`
	Role         string `toml:"role"`
}

func (f *fileSchema) applyDefaults() {
	if f.Version == 0 {
		f.Version = currentVersion
	}
}

func (f fileSchema) validateVersion() error {
	if f.Version != 0 && f.Version != currentVersion {
		return fmt.Errorf("unsupported session file version %d", f.Version)
	}
	return nil
}
