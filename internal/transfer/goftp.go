package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/secsy/goftp"
)

const (
	codeDirCreated      = 257
	codeFileUnavailable = 550
)

// FTPDialer implements Dialer on top of goftp
type FTPDialer struct {
	log logger.Logger
	// Debug receives goftp protocol logs when set
	Debug io.Writer
}

// NewFTPDialer returns a new instance of FTPDialer
func NewFTPDialer() *FTPDialer {
	return &FTPDialer{
		log: logger.New().With("transfer"),
	}
}

// Dial connects and logs in. The returned session is closed when ctx is
// done.
func (d *FTPDialer) Dial(ctx context.Context, conf config.ConnectionConfig, timeout time.Duration) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, exception.New(exception.ErrConnection, err, "dial %s", conf.Host)
	}

	client, err := goftp.DialConfig(goftp.Config{
		User:               conf.User,
		Password:           conf.Password,
		ConnectionsPerHost: 2,
		Timeout:            timeout,
		Logger:             d.Debug,
	}, conf.Addr())

	if err != nil {
		return nil, exception.New(exception.ErrConnection, err, "dial %s", conf.Host)
	}

	// goftp dials lazily; the raw connection performs the login now
	raw, err := client.OpenRawConn()

	if err != nil {
		client.Close()
		return nil, exception.New(exception.ErrConnection, err, "login to %s", conf.Host)
	}

	s := &FTPSession{
		log:    d.log,
		host:   conf.Host,
		client: client,
		raw:    raw,
		done:   make(chan struct{}),
	}

	go s.watch(ctx)

	d.log.Debug().Str("host", conf.Host).Msg("session opened")

	return s, nil
}

// FTPSession implements Session. The raw control connection serves CWD, MKD
// and raw commands while the pooled client serves listing and store.
type FTPSession struct {
	log    logger.Logger
	host   string
	client *goftp.Client
	raw    goftp.RawConn
	mux    sync.Mutex
	once   sync.Once
	done   chan struct{}
	err    error
}

func (s *FTPSession) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		s.log.Debug().Str("host", s.host).Msg("context done, closing session")
		s.Close()
	case <-s.done:
	}
}

// List returns the entries of a remote directory
func (s *FTPSession) List(dir string) ([]Entry, error) {
	infos, err := s.client.ReadDir(dir)

	if err != nil {
		return nil, mapError(err, "list %s", dir)
	}

	return toEntries(infos), nil
}

// ChangeDir changes the working directory of the control connection
func (s *FTPSession) ChangeDir(dir string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	code, msg, err := s.raw.SendCommand("CWD %s", dir)

	return checkReply(code, msg, err, "cwd %s", dir)
}

// EnsureDir creates every missing component of dir
func (s *FTPSession) EnsureDir(dir string) error {
	for _, p := range dirPrefixes(dir) {
		err := s.ChangeDir(p)

		if err == nil {
			continue
		}

		if !errors.Is(err, exception.ErrNotFound) {
			return err
		}

		if err := s.makeDir(p); err != nil {
			return err
		}
	}

	return nil
}

// makeDir sends MKD on the control connection. Any 257 counts as created
// since some servers omit the quoted path. A 550 is accepted when the
// directory turns out to exist.
func (s *FTPSession) makeDir(dir string) error {
	s.mux.Lock()
	code, msg, err := s.raw.SendCommand("MKD %s", dir)
	s.mux.Unlock()

	if err != nil {
		return mapError(err, "mkdir %s", dir)
	}

	if code == codeDirCreated {
		return nil
	}

	if code == codeFileUnavailable && s.ChangeDir(dir) == nil {
		return nil
	}

	return fmt.Errorf("mkdir %s: %d %s", dir, code, msg)
}

// Upload stores a local file at remotePath
func (s *FTPSession) Upload(localPath, remotePath string) error {
	f, err := os.Open(localPath)

	if err != nil {
		return err
	}

	defer f.Close()

	if err := s.client.Store(remotePath, f); err != nil {
		return fmt.Errorf("store %s: %w", remotePath, err)
	}

	return nil
}

// RawCommand sends cmd on the control connection and returns the reply
func (s *FTPSession) RawCommand(cmd string) (int, string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.raw.SendCommand("%s", cmd)
}

// Close closes both connections. It is safe to call more than once.
func (s *FTPSession) Close() error {
	s.once.Do(func() {
		close(s.done)

		s.mux.Lock()
		rawErr := s.raw.Close()
		s.mux.Unlock()

		s.err = errors.Join(rawErr, s.client.Close())

		s.log.Debug().Str("host", s.host).Msg("session closed")
	})

	return s.err
}

func toEntries(infos []os.FileInfo) []Entry {
	entries := make([]Entry, 0, len(infos))

	for _, info := range infos {
		entries = append(entries, Entry{
			Name:  path.Base(info.Name()),
			IsDir: info.IsDir(),
			Size:  info.Size(),
		})
	}

	return entries
}

// dirPrefixes returns "/a", "/a/b", "/a/b/c" for "/a/b/c"
func dirPrefixes(dir string) []string {
	clean := path.Clean(dir)

	if clean == "/" || clean == "." {
		return nil
	}

	prefix := ""

	if strings.HasPrefix(clean, "/") {
		prefix = "/"
	}

	parts := strings.Split(strings.Trim(clean, "/"), "/")
	prefixes := make([]string, 0, len(parts))

	for i := range parts {
		prefixes = append(prefixes, prefix+strings.Join(parts[:i+1], "/"))
	}

	return prefixes
}

func checkReply(code int, msg string, err error, format string, args ...any) error {
	if err != nil {
		return mapError(err, format, args...)
	}

	if code == codeFileUnavailable {
		return exception.New(exception.ErrNotFound, nil, "%s: %d %s", fmt.Sprintf(format, args...), code, msg)
	}

	if code < 200 || code > 299 {
		return fmt.Errorf("%s: %d %s", fmt.Sprintf(format, args...), code, msg)
	}

	return nil
}

func mapError(err error, format string, args ...any) error {
	var ftpErr goftp.Error

	if errors.As(err, &ftpErr) && ftpErr.Code() == codeFileUnavailable {
		return exception.New(exception.ErrNotFound, err, format, args...)
	}

	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
