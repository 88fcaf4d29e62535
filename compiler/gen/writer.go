package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// File is a generated artifact. Name is relative to the output directory.
type File struct {
	Name    string
	Content []byte
}

// Writer writes generated files to an output directory with parallel execution.
type Writer struct {
	outDir  string
	workers int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks write statistics.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a new writer rooted at outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// Write writes all files in parallel. Files that would escape the output
// directory are rejected.
func (w *Writer) Write(ctx context.Context, files []*File) error {
	if w.outDir == "" {
		return NewConfigError("Target", nil, "missing output directory")
	}
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(f)
			}
		})
	}

	return eg.Wait()
}

func (w *Writer) writeFile(f *File) error {
	if f.Name == "" || !filepath.IsLocal(f.Name) {
		return NewGenerationError("write", "", fmt.Sprintf("invalid file name %q", f.Name), nil)
	}
	fullPath := filepath.Join(w.outDir, f.Name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", f.Name, err)
	}
	if err := os.WriteFile(fullPath, f.Content, 0o644); err != nil {
		return NewGenerationError("write", "", f.Name, err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(f.Content))
	w.mu.Unlock()

	return nil
}
