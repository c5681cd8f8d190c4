package transfer

import (
	"context"
	"time"

	"github.com/lanpobre/rghstore/internal/config"
)

//go:generate mockgen -destination=../mock/transfer/mock_transfer.go -package=mock_transfer . Dialer,Session

// Entry represents one item of a remote directory listing
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Session represents one authenticated connection to a device
type Session interface {
	List(path string) ([]Entry, error)
	ChangeDir(path string) error
	EnsureDir(path string) error
	Upload(localPath, remotePath string) error
	RawCommand(cmd string) (int, string, error)
	Close() error
}

// Dialer opens sessions. Failures are reported as exception.ErrConnection.
type Dialer interface {
	Dial(ctx context.Context, conf config.ConnectionConfig, timeout time.Duration) (Session, error)
}
