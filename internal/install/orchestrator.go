package install

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lanpobre/rghstore/internal/artifact"
	"github.com/lanpobre/rghstore/internal/config"
	"github.com/lanpobre/rghstore/internal/event"
	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/logger"
	"github.com/lanpobre/rghstore/internal/metrics"
	"github.com/lanpobre/rghstore/internal/transfer"
)

// Orchestrator implements Installer
type Orchestrator struct {
	settings   config.InstallSettings
	dialer     transfer.Dialer
	downloader Downloader
	archivers  *Registry
	events     event.Manager
	metrics    metrics.Metrics
	now        func() time.Time
	log        logger.Logger
}

// NewOrchestrator returns a new instance of Orchestrator. events and m may
// be nil.
func NewOrchestrator(
	settings config.InstallSettings,
	dialer transfer.Dialer,
	downloader Downloader,
	archivers *Registry,
	events event.Manager,
	m metrics.Metrics,
) *Orchestrator {
	if m == nil {
		m = metrics.Noop{}
	}

	return &Orchestrator{
		settings:   settings,
		dialer:     dialer,
		downloader: downloader,
		archivers:  archivers,
		events:     events,
		metrics:    m,
		now:        time.Now,
		log:        logger.New().With("install"),
	}
}

// Install runs the whole pipeline for d against the device in conf.
// Precondition failures return a nil job before any network work. Once a
// job exists it is always returned, in state Completed or Failed, and its
// local files are gone.
func (o *Orchestrator) Install(ctx context.Context, conf config.ConnectionConfig, d artifact.Descriptor) (*Job, error) {
	if conf.Host == "" {
		return nil, exception.New(exception.ErrNotConnected, nil, "not connected to a device")
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	archiver, err := o.archivers.Lookup(artifact.Ext(d.DownloadURL))

	if err != nil {
		return nil, err
	}

	job := NewJob(d, o.settings.TempDir)
	job.StartedAt = o.now()

	o.log.Info().
		Str("job", job.ID).
		Str("name", d.Name).
		Str("url", d.DownloadURL).
		Msg("install started")

	o.sendState(job)

	err = o.run(ctx, job, conf, archiver)

	if cleanupErr := os.RemoveAll(job.WorkDir); cleanupErr != nil {
		o.warn(job, cleanupErr, "failed to remove work dir")
	}

	job.FinishedAt = o.now()

	if err != nil {
		job.Err = err
		o.transition(job, StateFailed)
		o.record(job)
		o.log.Error().Err(err).Str("job", job.ID).Msg("install failed")
		return job, err
	}

	o.sendProgress(job, 100, "completed")
	o.transition(job, StateCompleted)
	o.record(job)

	o.log.Info().Str("job", job.ID).Str("remote", job.RemoteBasePath).Msg("install completed")

	return job, nil
}

func (o *Orchestrator) run(ctx context.Context, job *Job, conf config.ConnectionConfig, archiver Archiver) error {
	o.transition(job, StateDownloading)
	o.sendProgress(job, 0, "downloading")

	if err := os.MkdirAll(job.WorkDir, 0o750); err != nil {
		return exception.New(exception.ErrDownload, err, "create work dir")
	}

	if err := o.downloader.Download(ctx, job.Descriptor.DownloadURL, job.LocalArchivePath); err != nil {
		return err
	}

	o.sendProgress(job, 30, "downloaded")

	o.transition(job, StateExtracting)

	if err := os.MkdirAll(job.LocalExtractPath, 0o750); err != nil {
		return exception.New(exception.ErrExtraction, err, "create extract dir")
	}

	if err := archiver.Extract(ctx, job.LocalArchivePath, job.LocalExtractPath); err != nil {
		return err
	}

	total, err := countFiles(job.LocalExtractPath)

	if err != nil {
		return exception.New(exception.ErrExtraction, err, "read extracted tree")
	}

	o.log.Debug().Str("job", job.ID).Int("files", total).Msg("archive extracted")

	o.sendProgress(job, 50, "extracted")

	o.transition(job, StateUploading)

	session, err := o.dialer.Dial(ctx, conf, o.settings.SessionTimeout)

	if err != nil {
		return err
	}

	defer session.Close()

	done := 0

	err = mirror(ctx, session, job.LocalExtractPath, job.RemoteBasePath, func(remotePath string) {
		done++
		o.log.Debug().Str("job", job.ID).Str("remote", remotePath).Msg("uploaded")
		o.sendProgress(job, 50+50*done/total, remotePath)
	})

	if err != nil {
		return err
	}

	if err := session.ChangeDir(job.RemoteBasePath); err != nil {
		return exception.New(exception.ErrUpload, err, "verify %s", job.RemoteBasePath)
	}

	if err := ctx.Err(); err != nil {
		return exception.New(exception.ErrUpload, err, "install canceled")
	}

	if err := session.Close(); err != nil {
		o.warn(job, err, "error closing session")
	}

	return nil
}

// warn logs a failure that does not fail the job and reports it to error
// listeners
func (o *Orchestrator) warn(job *Job, err error, msg string) {
	o.log.Warn().Err(err).Str("job", job.ID).Msg(msg)

	if o.events != nil {
		o.events.ReportError(fmt.Errorf("%s: %s: %w", job.Descriptor.Name, msg, err))
	}
}

func (o *Orchestrator) transition(job *Job, to State) {
	if err := job.Transition(to); err != nil {
		o.log.Error().Err(err).Str("job", job.ID).Msg("ignoring transition")
		return
	}

	o.sendState(job)
}

func (o *Orchestrator) sendState(job *Job) {
	if o.events == nil {
		return
	}

	o.events.Send(event.Event{
		Type: event.JobStateEventType,
		Payload: StateEvent{
			JobID: job.ID,
			Name:  job.Descriptor.Name,
			State: job.State,
			Err:   job.Err,
		},
	})
}

func (o *Orchestrator) sendProgress(job *Job, percent int, msg string) {
	if o.events == nil {
		return
	}

	o.events.Send(event.Event{
		Type: event.JobProgressEventType,
		Payload: ProgressEvent{
			JobID:   job.ID,
			Name:    job.Descriptor.Name,
			Percent: percent,
			Message: msg,
		},
	})
}

func (o *Orchestrator) record(job *Job) {
	o.metrics.IncJobsCompleted(string(job.Descriptor.Kind), string(job.State))
	o.metrics.ObserveJobDuration(string(job.State), job.FinishedAt.Sub(job.StartedAt).Seconds())
}
