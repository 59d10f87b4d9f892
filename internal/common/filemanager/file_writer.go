package filemanager

import (
	"context"
	"io/fs"
	"os"

	"github.com/aleister1102/pagemirror/internal/common/errorwrapper"
	"github.com/rs/zerolog"
)

// FileWriteOptions configures file writing behavior
type FileWriteOptions struct {
	CreateDirs  bool            // Whether to create parent directories
	Permissions fs.FileMode     // File permissions
	Exclusive   bool            // Fail with fs.ErrExist instead of replacing an existing file
	Context     context.Context // Context for cancellation
}

// DefaultFileWriteOptions returns default file writing options
func DefaultFileWriteOptions() FileWriteOptions {
	return FileWriteOptions{
		CreateDirs:  true,
		Permissions: 0o644,
		Context:     context.Background(),
	}
}

// FileWriter handles file writing operations
type FileWriter struct {
	logger zerolog.Logger
}

// NewFileWriter creates a new FileWriter instance
func NewFileWriter(logger zerolog.Logger) *FileWriter {
	return &FileWriter{
		logger: logger.With().Str("component", "FileWriter").Logger(),
	}
}

// WriteFile writes data to a file with the given options.
// With Exclusive set, the returned error wraps fs.ErrExist when path is taken.
func (fw *FileWriter) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	if opts.Context != nil {
		if err := opts.Context.Err(); err != nil {
			return errorwrapper.WrapError(err, "file write operation cancelled")
		}
	}

	if err := fw.performFileWrite(path, data, opts); err != nil {
		return errorwrapper.WrapErrorf(err, "failed to write file: %s", path)
	}

	fw.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written successfully")
	return nil
}

func (fw *FileWriter) performFileWrite(path string, data []byte, opts FileWriteOptions) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if opts.Exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	perm := opts.Permissions
	if perm == 0 {
		perm = 0o644
	}

	file, err := os.OpenFile(path, flags, perm)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
