package walk

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/MacroPower/xamlscale/pkg/scaling"
	"github.com/MacroPower/xamlscale/pkg/xaml"
	"github.com/MacroPower/xamlscale/pkg/xamlerrors"
)

// DefaultExtension is the extension of the files rewritten by a [Walker].
const DefaultExtension = ".xaml"

// Walker rescales files in place across a directory tree.
type Walker struct {
	rescaler *xaml.Rescaler
	notify   func(any)
	ext      string
}

// Option configures a [Walker].
type Option func(*Walker)

// WithExtension sets the extension of the files to rescale. Extensions are
// compared case-insensitively; the leading dot is optional.
func WithExtension(ext string) Option {
	return func(w *Walker) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		w.ext = ext
	}
}

// WithNotify sets a function receiving the walk events (EventFileStarted,
// EventFileDone and EventDirFailed) as they happen.
func WithNotify(fn func(any)) Option {
	return func(w *Walker) {
		w.notify = fn
	}
}

// New creates a [Walker] using r for each file.
func New(r *xaml.Rescaler, opts ...Option) *Walker {
	w := &Walker{
		rescaler: r,
		ext:      DefaultExtension,
		notify:   func(any) {},
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Result is the outcome of a walk.
type Result struct {
	// Err holds every file and directory failure as a [*multierror.Error], or
	// is nil.
	Err error
	// Stats is the sum of the stats of the rescaled files.
	Stats xaml.Stats
	// Files that were rescaled and written.
	Files int
	// Files that could not be rescaled.
	Failed int
	// Directories that could not be read.
	FailedDirs int
}

// Walk rescales every matching file under root by f, in place. Files of a
// directory are processed before its subdirectories, depth-first. Symbolic
// links to directories are not followed.
func (w *Walker) Walk(root string, f scaling.Factor) Result {
	var (
		res  Result
		merr *multierror.Error
	)

	w.walkDir(root, f, &res, &merr)

	res.Err = merr.ErrorOrNil()

	return res
}

func (w *Walker) walkDir(dir string, f scaling.Factor, res *Result, merr **multierror.Error) {
	slog.Debug("walk directory", slog.String("path", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		err = fmt.Errorf("%w %q: %w", xamlerrors.ErrReadDir, dir, err)
		res.FailedDirs++
		*merr = multierror.Append(*merr, err)
		w.notify(EventDirFailed{Path: dir, Err: err})

		return
	}

	for _, e := range entries {
		if e.IsDir() || !w.matches(e.Name()) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		w.notify(EventFileStarted{Path: path})

		stats, err := w.rescaler.RescaleFile(path, path, f)
		if err != nil {
			res.Failed++
			*merr = multierror.Append(*merr, err)
		} else {
			res.Files++
			res.Stats = res.Stats.Add(stats)
		}

		w.notify(EventFileDone{Path: path, Stats: stats, Err: err})
	}

	for _, e := range entries {
		if e.IsDir() {
			w.walkDir(filepath.Join(dir, e.Name()), f, res, merr)
		}
	}
}

func (w *Walker) matches(name string) bool {
	return strings.EqualFold(filepath.Ext(name), w.ext)
}
