package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const (
	keyPlayerName   = "player_name"
	keySoundEnabled = "sound_enabled"
)

// Settings are the player's persisted preferences.
type Settings struct {
	PlayerName   string
	SoundEnabled bool
}

// DefaultSettings returns the preferences used before anything is saved.
func DefaultSettings() Settings {
	return Settings{SoundEnabled: true}
}

// LoadSettings reads the saved preferences, falling back to defaults for
// missing keys.
func (s *Store) LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	name, err := s.setting(keyPlayerName)
	if err != nil {
		return settings, err
	}
	if name != nil {
		settings.PlayerName = *name
	}

	sound, err := s.setting(keySoundEnabled)
	if err != nil {
		return settings, err
	}
	if sound != nil {
		enabled, err := strconv.ParseBool(*sound)
		if err != nil {
			return settings, fmt.Errorf("storage: invalid %s value %q: %w", keySoundEnabled, *sound, err)
		}
		settings.SoundEnabled = enabled
	}

	return settings, nil
}

// SaveSettings writes every preference in one transaction.
func (s *Store) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	values := map[string]string{
		keyPlayerName:   settings.PlayerName,
		keySoundEnabled: strconv.FormatBool(settings.SoundEnabled),
	}
	for k, v := range values {
		if _, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			k, v,
		); err != nil {
			return fmt.Errorf("storage: cannot save setting %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit settings: %w", err)
	}
	return nil
}

// setting returns the stored value for key, or nil if it was never saved.
func (s *Store) setting(key string) (*string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return &value, nil
}
