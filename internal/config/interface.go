package config

import (
	"net"
	"strconv"
	"time"
)

//go:generate mockgen -destination=../mock/config/mock_config.go -package=mock_config . Repo,Service

// DefaultPort the ftp control port of the console
const DefaultPort = 21

// ConnectionConfig represents the credentials needed to reach a device.
// It is passed by value so an install or check never observes a change.
type ConnectionConfig struct {
	ID       string    `json:"id"`
	Host     string    `json:"host"`
	User     string    `json:"user"`
	Password string    `json:"password"`
	Port     int       `json:"port"`
	Loaded   time.Time `json:"loaded"`
}

// Addr returns host:port for the ftp control connection
func (c ConnectionConfig) Addr() string {
	port := c.Port

	if port == 0 {
		port = DefaultPort
	}

	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// Configs represents our collection of json connection configs
type Configs struct {
	Configs []*ConnectionConfig `json:"configs"`
}

// Repo interface representing access to stored connection configs
type Repo interface {
	Get(id string) (*ConnectionConfig, error)
	GetAll() ([]*ConnectionConfig, error)
	GetByHost(host string) (*ConnectionConfig, error)
	Create(conf *ConnectionConfig) (*ConnectionConfig, error)
	Update(conf *ConnectionConfig) (*ConnectionConfig, error)
	Delete(id string) error
	LastLoaded() (*ConnectionConfig, error)
}

// Service interface for manipulating connection configs
type Service interface {
	Get(id string) (*ConnectionConfig, error)
	GetAll() ([]*ConnectionConfig, error)
	Save(conf ConnectionConfig) (*ConnectionConfig, error)
	Delete(id string) error
	LastLoaded() (*ConnectionConfig, error)
}
