package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/lanpobre/rghstore/internal/exception"
)

// Archiver unpacks an archive into dest, which already exists and is empty
type Archiver interface {
	Extract(ctx context.Context, archivePath, dest string) error
}

// Registry maps lower-case file extensions to archivers
type Registry struct {
	archivers map[string]Archiver
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{archivers: map[string]Archiver{}}
}

// DefaultRegistry returns a Registry handling .zip in process and .rar
// through rarCommand
func DefaultRegistry(rarCommand string) *Registry {
	r := NewRegistry()
	r.Register(".zip", ZipArchiver{})
	r.Register(".rar", NewRarArchiver(rarCommand))
	return r
}

// Register sets the archiver for ext
func (r *Registry) Register(ext string, a Archiver) {
	r.archivers[strings.ToLower(ext)] = a
}

// Lookup returns the archiver for ext or exception.ErrUnsupportedFormat
func (r *Registry) Lookup(ext string) (Archiver, error) {
	a, ok := r.archivers[strings.ToLower(ext)]

	if !ok {
		return nil, exception.New(
			exception.ErrUnsupportedFormat,
			nil,
			"unsupported archive format %q (supported: %s)",
			ext,
			strings.Join(r.Extensions(), ", "),
		)
	}

	return a, nil
}

// Extensions returns the registered extensions in order
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.archivers))

	for ext := range r.archivers {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	return exts
}

// ZipArchiver extracts zip archives in process
type ZipArchiver struct{}

// Extract unpacks every entry of the zip archive, rejecting entries that
// would land outside dest
func (ZipArchiver) Extract(ctx context.Context, archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)

	if err != nil {
		return exception.New(exception.ErrExtraction, err, "open %s", filepath.Base(archivePath))
	}

	defer reader.Close()

	for _, f := range reader.File {
		if err := ctx.Err(); err != nil {
			return exception.New(exception.ErrExtraction, err, "extraction canceled")
		}

		if err := extractZipEntry(f, dest); err != nil {
			return exception.New(exception.ErrExtraction, err, "extract %s", f.Name)
		}
	}

	return nil
}

func extractZipEntry(f *zip.File, dest string) error {
	target, err := safeJoin(dest, f.Name)

	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, `\`) {
		return os.MkdirAll(target, 0o750)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return err
	}

	in, err := f.Open()

	if err != nil {
		return err
	}

	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)

	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// safeJoin resolves an archive entry name under base. Backslashes are
// treated as separators since archives made on Windows often use them.
func safeJoin(base, name string) (string, error) {
	slashed := strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	clean := filepath.Clean(filepath.FromSlash(slashed))

	if clean == "." || clean == "" {
		return "", fmt.Errorf("invalid archive path: %s", name)
	}

	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("absolute archive path: %s", name)
	}

	target := filepath.Join(base, clean)
	rel, err := filepath.Rel(base, target)

	if err != nil {
		return "", fmt.Errorf("invalid archive path: %s", name)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid archive path: %s", name)
	}

	return target, nil
}

// CommandArchiver extracts archives by running an external program
type CommandArchiver struct {
	command  string
	args     func(archivePath, dest string) []string
	lookPath func(string) (string, error)
}

// NewRarArchiver runs "<command> x -o+ <archive> <dest>/"
func NewRarArchiver(command string) *CommandArchiver {
	if command == "" {
		command = "unrar"
	}

	return &CommandArchiver{
		command: command,
		args: func(archivePath, dest string) []string {
			return []string{"x", "-o+", archivePath, dest + string(os.PathSeparator)}
		},
		lookPath: exec.LookPath,
	}
}

// Extract fails with exception.ErrExtraction when the program is missing
// or exits non-zero
func (a *CommandArchiver) Extract(ctx context.Context, archivePath, dest string) error {
	bin, err := a.lookPath(a.command)

	if err != nil {
		return exception.New(exception.ErrExtraction, err, "archiver %q not found", a.command)
	}

	// #nosec G204 -- the archiver binary comes from local settings
	cmd := exec.CommandContext(ctx, bin, a.args(archivePath, dest)...)

	if out, err := cmd.CombinedOutput(); err != nil {
		return exception.New(
			exception.ErrExtraction,
			err,
			"%s failed: %s",
			a.command,
			strings.TrimSpace(string(out)),
		)
	}

	return nil
}
