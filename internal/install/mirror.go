package install

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/lanpobre/rghstore/internal/exception"
	"github.com/lanpobre/rghstore/internal/transfer"
)

// countFiles returns the number of regular files under root
func countFiles(root string) (int, error) {
	count := 0

	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			count++
		}

		return nil
	})

	return count, err
}

// mirror recreates localDir at remoteDir depth first, parent before
// children, in os.ReadDir order. The first failure stops the walk;
// anything already uploaded stays on the device.
func mirror(
	ctx context.Context,
	session transfer.Session,
	localDir, remoteDir string,
	uploaded func(remotePath string),
) error {
	if err := ctx.Err(); err != nil {
		return exception.New(exception.ErrUpload, err, "upload canceled")
	}

	if err := session.EnsureDir(remoteDir); err != nil {
		return exception.New(exception.ErrUpload, err, "create %s", remoteDir)
	}

	entries, err := os.ReadDir(localDir)

	if err != nil {
		return exception.New(exception.ErrUpload, err, "read %s", localDir)
	}

	for _, entry := range entries {
		localPath := filepath.Join(localDir, entry.Name())
		remotePath := path.Join(remoteDir, entry.Name())

		if entry.IsDir() {
			if err := mirror(ctx, session, localPath, remotePath, uploaded); err != nil {
				return err
			}

			continue
		}

		if err := ctx.Err(); err != nil {
			return exception.New(exception.ErrUpload, err, "upload canceled")
		}

		if err := session.Upload(localPath, remotePath); err != nil {
			return exception.New(exception.ErrUpload, err, "upload %s", remotePath)
		}

		uploaded(remotePath)
	}

	return nil
}
