package install

import (
	"context"

	"github.com/lanpobre/rghstore/internal/artifact"
	"github.com/lanpobre/rghstore/internal/config"
)

//go:generate mockgen -destination=../mock/install/mock_install.go -package=mock_install . Installer

// Installer runs install jobs
type Installer interface {
	Install(ctx context.Context, conf config.ConnectionConfig, d artifact.Descriptor) (*Job, error)
}
