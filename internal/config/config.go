package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DiscoverySettings represents the configuration of a network discovery scan
type DiscoverySettings struct {
	Concurrency   int           `yaml:"concurrency"`
	ProbeTimeout  time.Duration `yaml:"probe_timeout"`
	DefaultPrefix string        `yaml:"default_prefix"`
	RangeStart    int           `yaml:"range_start"`
	RangeEnd      int           `yaml:"range_end"`
	User          string        `yaml:"user"`
	Password      string        `yaml:"password"`
	Port          int           `yaml:"port"`
}

// InstallSettings represents the configuration of the install pipeline
type InstallSettings struct {
	TempDir         string        `yaml:"temp_dir"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	MaxRedirects    int           `yaml:"max_redirects"`
	SessionTimeout  time.Duration `yaml:"session_timeout"`
	RarCommand      string        `yaml:"rar_command"`
}

// Settings represents the data structure of our user provided yaml settings
type Settings struct {
	Discovery DiscoverySettings `yaml:"discovery"`
	Install   InstallSettings   `yaml:"install"`
}

// Default returns the settings used when the user has not provided any
func Default() Settings {
	return Settings{
		Discovery: DiscoverySettings{
			Concurrency:   30,
			ProbeTimeout:  300 * time.Millisecond,
			DefaultPrefix: "192.168.1",
			RangeStart:    1,
			RangeEnd:      254,
			User:          "xboxftp",
			Password:      "xboxftp",
			Port:          DefaultPort,
		},
		Install: InstallSettings{
			TempDir:         os.TempDir(),
			DownloadTimeout: 10 * time.Minute,
			MaxRedirects:    5,
			SessionTimeout:  30 * time.Second,
			RarCommand:      "unrar",
		},
	}
}

// Load returns unmarshaled settings from the provided path. The file is
// decoded over Default so keys it omits keep their default and explicit
// zero values are preserved. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	settings := Default()

	raw, err := os.ReadFile(path)

	if errors.Is(err, os.ErrNotExist) {
		return &settings, nil
	}

	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Write writes settings to the provided path as yaml
func Write(path string, settings Settings) error {
	file, err := os.Create(path)

	if err != nil {
		return err
	}

	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	return encoder.Encode(settings)
}
