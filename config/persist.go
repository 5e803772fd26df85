package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/garagehq/gms/errors"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete oldest backup")
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, 0644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// Set writes a single key into the user config file (~/.gms/config.toml),
// rotating backups first. The in-memory cache is reset so the next Load
// observes the change.
func Set(key string, value interface{}) error {
	settings, configPath, err := loadOrInitializeUserConfig()
	if err != nil {
		return err
	}

	settings[key] = value

	if err := saveUserConfig(settings, configPath); err != nil {
		return err
	}

	Reset()
	return nil
}

// loadOrInitializeUserConfig loads the user config file, or creates an empty one if it doesn't exist
func loadOrInitializeUserConfig() (map[string]interface{}, string, error) {
	configPath := UserConfigPath()
	if configPath == "" {
		return nil, "", errors.New("could not determine home directory")
	}

	gmsDir := filepath.Dir(configPath)
	if err := os.MkdirAll(gmsDir, DefaultDirPermissions); err != nil {
		return nil, "", errors.Wrap(err, "failed to create .gms directory")
	}

	var settings map[string]interface{}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &settings); err != nil {
			return nil, "", errors.Wrap(err, "failed to parse user config")
		}
	} else {
		settings = make(map[string]interface{})
	}

	return settings, configPath, nil
}

// saveUserConfig writes the settings to the user config file with backup
func saveUserConfig(settings map[string]interface{}, configPath string) error {
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write user config")
	}

	return nil
}
