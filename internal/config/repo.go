package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/lanpobre/rghstore/internal/exception"
)

// JSONRepo is our repo implementation for a flat json file
type JSONRepo struct {
	configPath string
	configs    []*ConnectionConfig
	mux        sync.Mutex
}

// NewJSONRepo returns a new connection config repo for a flat json file.
// A missing file is treated as an empty collection.
func NewJSONRepo(configPath string) (*JSONRepo, error) {
	repo := &JSONRepo{
		configPath: configPath,
		configs:    []*ConnectionConfig{},
		mux:        sync.Mutex{},
	}

	if err := repo.load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return repo, nil
}

// Get returns a config by id
func (r *JSONRepo) Get(id string) (*ConnectionConfig, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if id == "" {
		return nil, errors.New("config id cannot be empty")
	}

	idx := slices.IndexFunc(r.configs, func(c *ConnectionConfig) bool {
		return c.ID == id
	})

	if idx == -1 {
		return nil, exception.ErrRecordNotFound
	}

	return copyConfig(r.configs[idx]), nil
}

// GetAll returns all stored configs
func (r *JSONRepo) GetAll() ([]*ConnectionConfig, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	configs := []*ConnectionConfig{}

	for _, c := range r.configs {
		configs = append(configs, copyConfig(c))
	}

	return configs, nil
}

// GetByHost returns the config stored for a host
func (r *JSONRepo) GetByHost(host string) (*ConnectionConfig, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	idx := slices.IndexFunc(r.configs, func(c *ConnectionConfig) bool {
		return c.Host == host
	})

	if idx == -1 {
		return nil, exception.ErrRecordNotFound
	}

	return copyConfig(r.configs[idx]), nil
}

// Create stores a new config and assigns it an id
func (r *JSONRepo) Create(conf *ConnectionConfig) (*ConnectionConfig, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if conf.Host == "" {
		return nil, errors.New("config host cannot be empty")
	}

	idx := slices.IndexFunc(r.configs, func(c *ConnectionConfig) bool {
		return c.Host == conf.Host
	})

	if idx != -1 {
		return nil, fmt.Errorf("config already exists: host: %s", conf.Host)
	}

	created := copyConfig(conf)
	created.ID = uuid.New().String()

	r.configs = append(r.configs, created)

	if err := r.write(); err != nil {
		return nil, err
	}

	return copyConfig(created), nil
}

// Update updates a stored config
func (r *JSONRepo) Update(conf *ConnectionConfig) (*ConnectionConfig, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	if conf.ID == "" {
		return nil, errors.New("config ID cannot be empty")
	}

	idx := slices.IndexFunc(r.configs, func(c *ConnectionConfig) bool {
		return c.ID == conf.ID
	})

	if idx == -1 {
		return nil, exception.ErrRecordNotFound
	}

	r.configs[idx] = copyConfig(conf)

	if err := r.write(); err != nil {
		return nil, err
	}

	return copyConfig(conf), nil
}

// Delete removes a stored config
func (r *JSONRepo) Delete(id string) error {
	r.mux.Lock()
	defer r.mux.Unlock()

	if id == "" {
		return errors.New("config id cannot be empty")
	}

	r.configs = slices.DeleteFunc(r.configs, func(c *ConnectionConfig) bool {
		return c.ID == id
	})

	return r.write()
}

// LastLoaded returns the most recently loaded config
func (r *JSONRepo) LastLoaded() (*ConnectionConfig, error) {
	r.mux.Lock()
	defer r.mux.Unlock()

	var last *ConnectionConfig

	for _, c := range r.configs {
		if last == nil || c.Loaded.After(last.Loaded) {
			last = c
		}
	}

	if last == nil {
		return nil, exception.ErrRecordNotFound
	}

	return copyConfig(last), nil
}

func (r *JSONRepo) write() error {
	configs := Configs{
		Configs: r.configs,
	}

	data, err := json.MarshalIndent(&configs, "", "\t")

	if err != nil {
		return err
	}

	// passwords are stored in plain text so keep the file private
	return os.WriteFile(r.configPath, data, 0600)
}

func (r *JSONRepo) load() error {
	data, err := os.ReadFile(r.configPath)

	if err != nil {
		return err
	}

	configs := Configs{}

	if err := json.Unmarshal(data, &configs); err != nil {
		return err
	}

	r.configs = configs.Configs

	return nil
}

// helpers
func copyConfig(c *ConnectionConfig) *ConnectionConfig {
	cp := *c
	return &cp
}
