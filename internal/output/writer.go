package output

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultExtension is appended to device identifiers when none is configured.
const DefaultExtension = ".xml"

const filePerm = 0o644

// Writer persists one rendered configuration and returns the path written.
type Writer interface {
	Write(ctx context.Context, name, text string) (string, error)
}

// Options configure a FileWriter.
type Options struct {
	// Dir is the output directory. It must exist unless Create is set.
	Dir string

	// Extension is appended to every name. Defaults to DefaultExtension.
	Extension string

	// Create makes Dir (and parents) when missing.
	Create bool
}

// FileWriter writes configurations atomically into one directory.
type FileWriter struct {
	dir string
	ext string
}

// NewFileWriter validates the output directory and returns a writer for it.
func NewFileWriter(opts Options) (*FileWriter, error) {
	dir := opts.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist) && opts.Create:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	case err != nil:
		return nil, fmt.Errorf("checking output directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	return &FileWriter{dir: dir, ext: normaliseExt(opts.Extension)}, nil
}

// Dir returns the output directory.
func (w *FileWriter) Dir() string {
	return w.dir
}

// Write stores text as {dir}/{name}{ext}, replacing any existing file.
func (w *FileWriter) Write(ctx context.Context, name, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest, err := targetPath(w.dir, name, w.ext)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(w.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("syncing %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing %s: %w", dest, err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("setting permissions on %s: %w", dest, err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("replacing %s: %w", dest, err)
	}
	return dest, nil
}

// DryRun records the paths a FileWriter would write without creating files.
// It is safe for concurrent use.
type DryRun struct {
	dir string
	ext string

	mu    sync.Mutex
	paths []string
}

// NewDryRun returns a DryRun for dir and extension.
func NewDryRun(dir, extension string) *DryRun {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &DryRun{dir: dir, ext: normaliseExt(extension)}
}

// Write returns the path text would be written to.
func (d *DryRun) Write(ctx context.Context, name, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dest, err := targetPath(d.dir, name, d.ext)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	d.paths = append(d.paths, dest)
	d.mu.Unlock()
	return dest, nil
}

// Paths returns the recorded paths in write order.
func (d *DryRun) Paths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.paths))
	copy(out, d.paths)
	return out
}

// targetPath joins name and ext onto dir, rejecting names that are empty or
// would leave dir.
func targetPath(dir, name, ext string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if filepath.IsAbs(name) || filepath.VolumeName(name) != "" ||
		strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(dir, name+ext), nil
}

func normaliseExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
