// Package jobfolder classifies simulation job directories.
//
// A jobfolder is any directory containing a marker file (initial.traj by
// default). Optional siblings: a log file whose trailing lines determine the
// job status, and a results trajectory consumed by the structure viewer.
package jobfolder

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"regexp"

	pkgerrors "github.com/pkg/errors"

	"github.com/atomsim/jobtool/internal/domain"
)

// ErrNotAJobfolder is returned by Classify when the directory does not
// contain the marker file
var ErrNotAJobfolder = errors.New("not a jobfolder")

var (
	convergedSignal    = regexp.MustCompile(`^Date:`)
	notConvergedSignal = regexp.MustCompile(`^Did not converge!\s*$`)
)

// Options control classification of a single directory
type Options struct {
	// MarkerFile qualifies a directory as a jobfolder
	MarkerFile string
	// LogFile is inspected to determine status
	LogFile string
	// LinesChecked bounds the trailing log window. Zero means an empty
	// window, which classifies any non-empty log as unfinished.
	LinesChecked int
}

// IsJobfolder reports whether dir contains the marker file
func IsJobfolder(dir, marker string) bool {
	info, err := os.Stat(filepath.Join(dir, marker))
	return err == nil && !info.IsDir()
}

// Classify determines the status of the jobfolder at dir. The directory must
// qualify as a jobfolder; if the marker file is absent, ErrNotAJobfolder is
// returned. Callers that do not know whether dir qualifies should use
// ClassifyLenient instead.
func Classify(dir string, opts Options) (domain.Status, error) {
	status, ok, err := ClassifyLenient(dir, opts)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", pkgerrors.Wrap(ErrNotAJobfolder, dir)
	}
	return status, nil
}

// ClassifyLenient determines the status of the jobfolder at dir. When dir
// does not qualify as a jobfolder, it reports ok=false with no error.
func ClassifyLenient(dir string, opts Options) (domain.Status, bool, error) {
	if !IsJobfolder(dir, opts.MarkerFile) {
		return "", false, nil
	}

	logPath := filepath.Join(dir, opts.LogFile)
	if _, err := os.Stat(logPath); err != nil {
		if os.IsNotExist(err) {
			return domain.StatusNotStarted, true, nil
		}
		return "", false, pkgerrors.Wrapf(err, "stat log file %s", logPath)
	}

	lines, err := readLines(logPath)
	if err != nil {
		return "", false, pkgerrors.Wrapf(err, "read log file %s", logPath)
	}
	if len(lines) == 0 {
		// A log exists but says nothing yet
		return domain.StatusUnknown, true, nil
	}

	window := lines
	if n := max(opts.LinesChecked, 0); n < len(lines) {
		window = lines[len(lines)-n:]
	}

	// Convergence is decided solely by the final line; the rest of the
	// window is only scanned for the failure marker.
	if len(window) > 0 && convergedSignal.MatchString(window[len(window)-1]) {
		return domain.StatusConverged, true, nil
	}
	for _, line := range window {
		if notConvergedSignal.MatchString(line) {
			return domain.StatusNotConverged, true, nil
		}
	}
	return domain.StatusUnfinished, true, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
