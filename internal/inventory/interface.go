package inventory

import (
	"context"

	"github.com/lanpobre/rghstore/internal/config"
)

//go:generate mockgen -destination=../mock/inventory/mock_inventory.go -package=mock_inventory . Checker

// Status represents what a check could establish about an app
type Status string

// Location represents the namespace an app was found in
type Location string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusUnknown  Status = "unknown"

	LocationApps    Location = "apps"
	LocationPlugins Location = "plugins"
	LocationNone    Location = ""
)

// Result represents the outcome of an installed check
type Result struct {
	Status   Status
	Location Location
}

// Installed reports whether the app was found
func (r Result) Installed() bool {
	return r.Status == StatusFound
}

// Checker interface for checking whether an app exists on a device
type Checker interface {
	Check(ctx context.Context, conf config.ConnectionConfig, name string) (Result, error)
}
