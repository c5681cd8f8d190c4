package config

import (
	"errors"
	"time"

	"github.com/lanpobre/rghstore/internal/exception"
)

// ConfigService implements the Service interface on top of a Repo
type ConfigService struct {
	repo Repo
	now  func() time.Time
}

// NewConfigService returns a new instance of ConfigService
func NewConfigService(repo Repo) *ConfigService {
	return &ConfigService{repo: repo, now: time.Now}
}

func (s *ConfigService) Get(id string) (*ConnectionConfig, error) {
	return s.repo.Get(id)
}

func (s *ConfigService) GetAll() ([]*ConnectionConfig, error) {
	return s.repo.GetAll()
}

// Save creates or updates the config stored for conf.Host and marks it as
// the most recently loaded
func (s *ConfigService) Save(conf ConnectionConfig) (*ConnectionConfig, error) {
	conf.Loaded = s.now()

	if conf.Port == 0 {
		conf.Port = DefaultPort
	}

	existing, err := s.repo.GetByHost(conf.Host)

	if errors.Is(err, exception.ErrRecordNotFound) {
		return s.repo.Create(&conf)
	}

	if err != nil {
		return nil, err
	}

	conf.ID = existing.ID

	return s.repo.Update(&conf)
}

func (s *ConfigService) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *ConfigService) LastLoaded() (*ConnectionConfig, error) {
	return s.repo.LastLoaded()
}
