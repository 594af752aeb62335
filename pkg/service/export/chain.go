package export

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
)

// Destination delivers an encoded export somewhere
type Destination interface {
	Name() string
	Deliver(ctx context.Context, data []byte) error
}

// Chain tries each destination in order until one accepts the export
type Chain []Destination

// Deliver returns the name of the destination that accepted data. If every destination
// fails the last error is returned.
func (c Chain) Deliver(ctx context.Context, data []byte) (string, error) {
	if len(c) == 0 {
		return "", goerr.New("no export destination configured")
	}

	var lastErr error
	for _, dst := range c {
		err := dst.Deliver(ctx, data)
		if err == nil {
			return dst.Name(), nil
		}
		logging.From(ctx).Warn("export destination failed, trying next",
			"destination", dst.Name(),
			"error", err.Error(),
		)
		lastErr = err
	}
	return "", lastErr
}

// File writes the export to a file. The data goes to a temporary file in the same
// directory first and is renamed over Path, so Path never holds a partial export.
type File struct {
	Path string
}

func (f *File) Name() string {
	return "file:" + f.Path
}

func (f *File) Deliver(ctx context.Context, data []byte) error {
	if f.Path == "" {
		return goerr.New("output path is empty")
	}
	path := filepath.Clean(f.Path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("path", f.Path))
	}

	fd, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("path", f.Path))
	}
	tmp := fd.Name()

	if _, err := fd.Write(data); err != nil {
		safe.Close(ctx, fd)
		safe.Remove(ctx, tmp)
		return goerr.Wrap(err, "failed to write output file", goerr.V("path", f.Path))
	}
	if err := fd.Close(); err != nil {
		safe.Remove(ctx, tmp)
		return goerr.Wrap(err, "failed to close output file", goerr.V("path", f.Path))
	}
	if err := os.Rename(tmp, path); err != nil {
		safe.Remove(ctx, tmp)
		return goerr.Wrap(err, "failed to move output file into place", goerr.V("path", f.Path))
	}
	return nil
}

// Writer writes the export to an arbitrary stream such as stdout
type Writer struct {
	Label string
	W     io.Writer
}

func (w *Writer) Name() string {
	return w.Label
}

func (w *Writer) Deliver(_ context.Context, data []byte) error {
	if w.W == nil {
		return goerr.New("writer is nil", goerr.V("destination", w.Label))
	}
	if _, err := w.W.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write export", goerr.V("destination", w.Label))
	}
	return nil
}
