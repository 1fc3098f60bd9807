// Package walker discovers and classifies every jobfolder under a root
// directory.
package walker

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/atomsim/jobtool/internal/config"
	"github.com/atomsim/jobtool/internal/domain"
	"github.com/atomsim/jobtool/internal/jobfolder"
)

// ErrInvalidRoot is returned when the walk root does not exist or is not a
// directory
var ErrInvalidRoot = errors.New("invalid walk root")

// Stats counts what a single walk saw. Skipped directories are also logged,
// so failures are never silently absorbed.
type Stats struct {
	Visited int
	Yielded int
	Skipped int
}

// Walker traverses a directory tree and classifies every jobfolder in it
type Walker struct {
	opts  jobfolder.Options
	log   *logrus.Entry
	stats Stats
}

// New creates a Walker from the scan configuration
func New(cfg *config.Config) *Walker {
	return &Walker{
		opts: jobfolder.Options{
			MarkerFile:   cfg.Scan.MarkerFile,
			LogFile:      cfg.Scan.LogFile,
			LinesChecked: cfg.Scan.LinesChecked,
		},
		log: logrus.WithField("scan_id", uuid.NewString()),
	}
}

// Stats returns the counters of the most recent walk. Only meaningful after
// the sequence returned by Walk has been drained.
func (w *Walker) Stats() Stats {
	return w.stats
}

// Walk validates root and returns a lazy, single-use sequence of classified
// jobfolders. Every directory under root is visited, the root itself
// included; a jobfolder nested inside another jobfolder is yielded too.
// Symlinks are not followed.
//
// Directories that cannot be read, and jobfolders whose log cannot be read,
// are logged, counted in Stats and skipped; the walk continues. This is a
// reporting tool, so one unreadable subtree should not abort the whole scan.
func (w *Walker) Walk(root string) (iter.Seq[domain.JobResult], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Join(ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, errors.Join(ErrInvalidRoot, errors.New(root+" is not a directory"))
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Join(ErrInvalidRoot, err)
	}

	w.stats = Stats{}
	return func(yield func(domain.JobResult) bool) {
		_ = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				w.stats.Skipped++
				w.log.WithError(err).WithField("path", path).Warn("skipping unreadable directory")
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			w.stats.Visited++

			status, ok, err := jobfolder.ClassifyLenient(path, w.opts)
			if err != nil {
				w.stats.Skipped++
				w.log.WithError(err).WithField("path", path).Warn("skipping unclassifiable jobfolder")
				return nil
			}
			if !ok {
				return nil
			}

			w.stats.Yielded++
			if !yield(domain.JobResult{Path: path, Status: status}) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}
