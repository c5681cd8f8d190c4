package install

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/lanpobre/rghstore/internal/artifact"
)

// State represents the stage an install job is in
type State string

const (
	StatePending     State = "pending"
	StateDownloading State = "downloading"
	StateExtracting  State = "extracting"
	StateUploading   State = "uploading"
	StateCompleted   State = "completed"
	StateFailed      State = "failed"
)

var next = map[State]State{
	StatePending:     StateDownloading,
	StateDownloading: StateExtracting,
	StateExtracting:  StateUploading,
	StateUploading:   StateCompleted,
}

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// CanTransition reports whether s may move to to
func (s State) CanTransition(to State) bool {
	if s.Terminal() {
		return false
	}

	if to == StateFailed {
		return true
	}

	return next[s] == to
}

// Job represents a single run of the install pipeline. It owns its local
// work directory, never the remote session.
type Job struct {
	ID               string
	Descriptor       artifact.Descriptor
	WorkDir          string
	LocalArchivePath string
	LocalExtractPath string
	RemoteBasePath   string
	State            State
	Err              error
	StartedAt        time.Time
	FinishedAt       time.Time
}

// NewJob returns a pending job working under tempDir
func NewJob(d artifact.Descriptor, tempDir string) *Job {
	id := uuid.New().String()
	workDir := filepath.Join(tempDir, "rghstore-"+id)

	return &Job{
		ID:               id,
		Descriptor:       d,
		WorkDir:          workDir,
		LocalArchivePath: filepath.Join(workDir, d.Name+artifact.Ext(d.DownloadURL)),
		LocalExtractPath: filepath.Join(workDir, d.Name),
		RemoteBasePath:   artifact.RemotePath(d),
		State:            StatePending,
	}
}

// Transition moves the job to state to, rejecting illegal moves
func (j *Job) Transition(to State) error {
	if !j.State.CanTransition(to) {
		return fmt.Errorf("illegal job transition %s -> %s", j.State, to)
	}

	j.State = to

	return nil
}

// StateEvent is the payload of event.JobStateEventType
type StateEvent struct {
	JobID string
	Name  string
	State State
	Err   error
}

// ProgressEvent is the payload of event.JobProgressEventType
type ProgressEvent struct {
	JobID   string
	Name    string
	Percent int
	Message string
}
