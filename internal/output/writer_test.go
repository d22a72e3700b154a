package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewFileWriter(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "existing directory", opts: Options{Dir: dir}},
		{name: "missing directory", opts: Options{Dir: filepath.Join(dir, "missing")}, wantErr: ErrDirNotFound},
		{name: "missing directory created", opts: Options{Dir: filepath.Join(dir, "a", "b"), Create: true}},
		{name: "file instead of directory", opts: Options{Dir: file}, wantErr: ErrNotDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewFileWriter(tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewFileWriter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFileWriter() error = %v", err)
			}
			if info, err := os.Stat(w.Dir()); err != nil || !info.IsDir() {
				t.Errorf("output directory %s not usable: %v", w.Dir(), err)
			}
		})
	}
}

func TestFileWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWriter(Options{Dir: dir})
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	ctx := context.Background()

	path, err := w.Write(ctx, "S1-DEFAULT-HT818-1", "first")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if want := filepath.Join(dir, "S1-DEFAULT-HT818-1.xml"); path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	// Overwrites replace the previous content.
	if _, err := w.Write(ctx, "S1-DEFAULT-HT818-1", "second"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("permissions = %o, want 644", perm)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp files must not remain)", len(entries))
	}
}

func TestFileWriter_Extension(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWriter(Options{Dir: dir, Extension: "cfg"})
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}

	path, err := w.Write(context.Background(), "dev", "x")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "dev.cfg" {
		t.Errorf("file name = %q, want dev.cfg", filepath.Base(path))
	}
}

func TestFileWriter_InvalidNames(t *testing.T) {
	w, err := NewFileWriter(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}

	for _, name := range []string{"", "  ", "..", "../escape", "a/b", `a\b`, "/etc/passwd"} {
		t.Run(name, func(t *testing.T) {
			if _, err := w.Write(context.Background(), name, "x"); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Write(%q) error = %v, want ErrInvalidName", name, err)
			}
		})
	}
}

func TestFileWriter_Cancelled(t *testing.T) {
	w, err := NewFileWriter(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.Write(ctx, "dev", "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Write() error = %v, want context.Canceled", err)
	}
}

func TestDryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	d := NewDryRun(dir, "")

	for _, name := range []string{"a", "b"} {
		if _, err := d.Write(context.Background(), name, "text"); err != nil {
			t.Fatalf("Write(%q) error = %v", name, err)
		}
	}

	want := []string{filepath.Join(dir, "a.xml"), filepath.Join(dir, "b.xml")}
	if diff := cmp.Diff(want, d.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("dry run touched the filesystem: %v", err)
	}
}
