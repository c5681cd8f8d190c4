package install_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/lanpobre/rghstore/internal/artifact"
	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/event"
	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/install"
	"github.com/lanpobre/rghstore/internal/transfer"
	"github.com/stretchr/testify/assert"
)

// memSession is an in-memory device
type memSession struct {
	dirs     map[string]bool
	files    map[string]string
	attempts []string
	failOn   int
	closed   int
	closeErr error
}

func newMemSession() *memSession {
	return &memSession{
		dirs:  map[string]bool{"/": true},
		files: map[string]string{},
	}
}

func (s *memSession) List(dir string) ([]transfer.Entry, error) {
	return nil, errors.New("not used")
}

func (s *memSession) ChangeDir(dir string) error {
	if !s.dirs[path.Clean(dir)] {
		return exception.New(exception.ErrNotFound, nil, "cwd %s", dir)
	}

	return nil
}

func (s *memSession) EnsureDir(dir string) error {
	for p := path.Clean(dir); p != "/" && p != "."; p = path.Dir(p) {
		s.dirs[p] = true
	}

	return nil
}

func (s *memSession) Upload(localPath, remotePath string) error {
	s.attempts = append(s.attempts, remotePath)

	if s.failOn > 0 && len(s.attempts) == s.failOn {
		return errors.New("550 disk full")
	}

	if !s.dirs[path.Dir(remotePath)] {
		return errors.New("parent directory missing")
	}

	data, err := os.ReadFile(localPath)

	if err != nil {
		return err
	}

	s.files[remotePath] = string(data)

	return nil
}

func (s *memSession) RawCommand(cmd string) (int, string, error) {
	return 211, "ok", nil
}

func (s *memSession) Close() error {
	s.closed++
	return s.closeErr
}

func (s *memSession) tree() []string {
	list := []string{}

	for p, body := range s.files {
		list = append(list, p+"="+body)
	}

	sort.Strings(list)

	return list
}

type memDialer struct {
	session *memSession
	dials   atomic.Int64
	err     error
}

func (d *memDialer) Dial(ctx context.Context, conf config.ConnectionConfig, timeout time.Duration) (transfer.Session, error) {
	d.dials.Add(1)

	if d.err != nil {
		return nil, d.err
	}

	return d.session, nil
}

func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	names := []string{}

	for name := range entries {
		names = append(names, name)
	}

	sort.Strings(names)

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	for _, name := range names {
		f, err := w.Create(name)
		assert.NoError(t, err)

		_, err = f.Write([]byte(entries[name]))
		assert.NoError(t, err)
	}

	assert.NoError(t, w.Close())

	return buf.Bytes()
}

func drain(ch chan event.Event) []event.Event {
	events := []event.Event{}

	for {
		select {
		case evt := <-ch:
			events = append(events, evt)
		default:
			return events
		}
	}
}

func TestOrchestrator(t *testing.T) {
	var hits atomic.Int64

	archives := map[string][]byte{
		"/files/Foo.zip": zipBytes(t, map[string]string{
			"default.xex":     "xex",
			"data/a.bin":      "a",
			"data/sub/b.bin":  "b",
			"media/cover.png": "png",
		}),
		"/files/Five.zip": zipBytes(t, map[string]string{
			"1.bin": "1",
			"2.bin": "2",
			"3.bin": "3",
			"4.bin": "4",
			"5.bin": "5",
		}),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		data, ok := archives[r.URL.Path]

		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Write(data)
	})

	mux.HandleFunc("/redirect/Foo.zip", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Redirect(w, r, "/files/Foo.zip", http.StatusFound)
	})

	server := httptest.NewServer(mux)

	defer server.Close()

	conf := config.ConnectionConfig{
		Host:     "192.168.1.20",
		User:     "xboxftp",
		Password: "xboxftp",
		Port:     21,
	}

	newOrchestrator := func(st *testing.T, dialer transfer.Dialer) (*install.Orchestrator, chan event.Event, chan event.Event, string) {
		settings := config.Default().Install
		settings.TempDir = st.TempDir()

		events := event.NewEventManager()

		states := make(chan event.Event, 100)
		progress := make(chan event.Event, 100)

		events.RegisterListener(event.JobStateEventType, states)
		events.RegisterListener(event.JobProgressEventType, progress)

		o := install.NewOrchestrator(
			settings,
			dialer,
			install.NewHTTPDownloader(5*time.Second, install.DefaultMaxRedirects),
			install.DefaultRegistry(settings.RarCommand),
			events,
			nil,
		)

		return o, states, progress, settings.TempDir
	}

	t.Run("installs an app end to end", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, states, progress, tempDir := newOrchestrator(st, dialer)

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "Foo",
			DownloadURL: server.URL + "/redirect/Foo.zip",
			Kind:        artifact.KindApp,
		})

		assert.NoError(st, err)
		assert.Equal(st, install.StateCompleted, job.State)
		assert.Nil(st, job.Err)
		assert.False(st, job.FinishedAt.Before(job.StartedAt))

		assert.Equal(st, []string{
			"/Hdd1/Apps/Foo/data/a.bin=a",
			"/Hdd1/Apps/Foo/data/sub/b.bin=b",
			"/Hdd1/Apps/Foo/default.xex=xex",
			"/Hdd1/Apps/Foo/media/cover.png=png",
		}, dialer.session.tree())

		assert.Equal(st, []string{
			"/Hdd1/Apps/Foo/data/a.bin",
			"/Hdd1/Apps/Foo/data/sub/b.bin",
			"/Hdd1/Apps/Foo/default.xex",
			"/Hdd1/Apps/Foo/media/cover.png",
		}, dialer.session.attempts)

		assert.GreaterOrEqual(st, dialer.session.closed, 1)

		stateSeq := []install.State{}

		for _, evt := range drain(states) {
			stateSeq = append(stateSeq, evt.Payload.(install.StateEvent).State)
		}

		assert.Equal(st, []install.State{
			install.StatePending,
			install.StateDownloading,
			install.StateExtracting,
			install.StateUploading,
			install.StateCompleted,
		}, stateSeq)

		percents := []int{}

		for _, evt := range drain(progress) {
			percents = append(percents, evt.Payload.(install.ProgressEvent).Percent)
		}

		assert.Equal(st, []int{0, 30, 50, 62, 75, 87, 100, 100}, percents)

		entries, err := os.ReadDir(tempDir)

		assert.NoError(st, err)
		assert.Empty(st, entries)
	})

	t.Run("installs plugins into the plugins namespace", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, _, _, _ := newOrchestrator(st, dialer)

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "Foo",
			DownloadURL: server.URL + "/files/Foo.zip",
			Kind:        artifact.KindPlugin,
		})

		assert.NoError(st, err)
		assert.Equal(st, "/Hdd1/Plugins/Foo", job.RemoteBasePath)
		assert.Contains(st, dialer.session.tree(), "/Hdd1/Plugins/Foo/default.xex=xex")
	})

	t.Run("running twice yields the same remote tree", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, _, _, _ := newOrchestrator(st, dialer)

		d := artifact.Descriptor{Name: "Foo", DownloadURL: server.URL + "/files/Foo.zip"}

		_, err := o.Install(context.Background(), conf, d)
		assert.NoError(st, err)

		first := dialer.session.tree()

		job, err := o.Install(context.Background(), conf, d)
		assert.NoError(st, err)
		assert.Equal(st, install.StateCompleted, job.State)

		assert.Equal(st, first, dialer.session.tree())
	})

	t.Run("aborts on the first failed upload", func(st *testing.T) {
		session := newMemSession()
		session.failOn = 3

		dialer := &memDialer{session: session}

		o, states, _, tempDir := newOrchestrator(st, dialer)

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "Five",
			DownloadURL: server.URL + "/files/Five.zip",
		})

		assert.ErrorIs(st, err, exception.ErrUpload)
		assert.Equal(st, install.StateFailed, job.State)
		assert.ErrorIs(st, job.Err, exception.ErrUpload)

		assert.Equal(st, []string{
			"/Hdd1/Apps/Five/1.bin=1",
			"/Hdd1/Apps/Five/2.bin=2",
		}, session.tree())

		assert.Equal(st, 3, len(session.attempts))
		assert.GreaterOrEqual(st, session.closed, 1)

		evts := drain(states)
		last := evts[len(evts)-1].Payload.(install.StateEvent)

		assert.Equal(st, install.StateFailed, last.State)
		assert.ErrorIs(st, last.Err, exception.ErrUpload)

		entries, err := os.ReadDir(tempDir)

		assert.NoError(st, err)
		assert.Empty(st, entries)
	})

	t.Run("rejects unsupported formats before any network work", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, states, _, _ := newOrchestrator(st, dialer)

		before := hits.Load()

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "Foo",
			DownloadURL: server.URL + "/files/Foo.7z",
		})

		assert.Nil(st, job)
		assert.ErrorIs(st, err, exception.ErrUnsupportedFormat)
		assert.ErrorIs(st, err, exception.ErrExtraction)
		assert.Equal(st, before, hits.Load())
		assert.Equal(st, int64(0), dialer.dials.Load())
		assert.Empty(st, drain(states))
	})

	t.Run("requires a connection", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, _, _, _ := newOrchestrator(st, dialer)

		job, err := o.Install(context.Background(), config.ConnectionConfig{}, artifact.Descriptor{
			Name:        "Foo",
			DownloadURL: server.URL + "/files/Foo.zip",
		})

		assert.Nil(st, job)
		assert.ErrorIs(st, err, exception.ErrNotConnected)
	})

	t.Run("rejects invalid names", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, _, _, _ := newOrchestrator(st, dialer)

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "../Foo",
			DownloadURL: server.URL + "/files/Foo.zip",
		})

		assert.Nil(st, job)
		assert.ErrorIs(st, err, exception.ErrInvalidName)
	})

	t.Run("fails download without dialing", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, _, _, tempDir := newOrchestrator(st, dialer)

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "Gone",
			DownloadURL: server.URL + "/files/Gone.zip",
		})

		assert.ErrorIs(st, err, exception.ErrDownload)
		assert.Equal(st, install.StateFailed, job.State)
		assert.Equal(st, int64(0), dialer.dials.Load())

		entries, err := os.ReadDir(tempDir)

		assert.NoError(st, err)
		assert.Empty(st, entries)
	})

	t.Run("fails when the device cannot be reached", func(st *testing.T) {
		dialer := &memDialer{err: exception.New(exception.ErrConnection, nil, "dial %s", conf.Host)}

		o, _, _, _ := newOrchestrator(st, dialer)

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "Foo",
			DownloadURL: server.URL + "/files/Foo.zip",
		})

		assert.ErrorIs(st, err, exception.ErrConnection)
		assert.Equal(st, install.StateFailed, job.State)
	})

	t.Run("never succeeds once canceled", func(st *testing.T) {
		dialer := &memDialer{session: newMemSession()}

		o, _, _, _ := newOrchestrator(st, dialer)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		job, err := o.Install(ctx, conf, artifact.Descriptor{
			Name:        "Foo",
			DownloadURL: server.URL + "/files/Foo.zip",
		})

		assert.Error(st, err)
		assert.Equal(st, install.StateFailed, job.State)
		assert.True(st, strings.Contains(err.Error(), "canceled"))
	})

	t.Run("reports session close failure without failing the job", func(st *testing.T) {
		session := newMemSession()
		session.closeErr = errors.New("421 connection lost")

		dialer := &memDialer{session: session}

		settings := config.Default().Install
		settings.TempDir = st.TempDir()

		events := event.NewEventManager()
		errs := make(chan event.Event, 10)
		events.RegisterListener(event.ErrorEventType, errs)

		o := install.NewOrchestrator(
			settings,
			dialer,
			install.NewHTTPDownloader(5*time.Second, install.DefaultMaxRedirects),
			install.DefaultRegistry(settings.RarCommand),
			events,
			nil,
		)

		job, err := o.Install(context.Background(), conf, artifact.Descriptor{
			Name:        "Foo",
			DownloadURL: server.URL + "/files/Foo.zip",
		})

		assert.NoError(st, err)
		assert.Equal(st, install.StateCompleted, job.State)

		reported := drain(errs)

		assert.Equal(st, 1, len(reported))
		assert.ErrorIs(st, reported[0].Payload.(error), session.closeErr)
	})
}
