package domain

import (
	"fmt"
	"strings"
)

// Status represents the state of a simulation job as derived from its
// jobfolder contents
type Status string

const (
	StatusNotStarted   Status = "not_started"
	StatusUnknown      Status = "unknown"
	StatusUnfinished   Status = "unfinished"
	StatusNotConverged Status = "not_converged"
	StatusConverged    Status = "converged"
)

// AllStatuses lists every valid status in declaration order
var AllStatuses = []Status{
	StatusNotStarted,
	StatusUnknown,
	StatusUnfinished,
	StatusNotConverged,
	StatusConverged,
}

// ErrUnknownStatus is returned when a user-supplied string does not name
// any valid status
var ErrUnknownStatus = fmt.Errorf("unknown status")

// ParseStatus parses a user-supplied status string. Matching is
// case-insensitive and treats spaces and dashes as underscores, so
// "Not-Converged", "not_converged" and "NOT CONVERGED" all parse to
// StatusNotConverged.
func ParseStatus(s string) (Status, error) {
	normalized := strings.TrimSpace(strings.ToLower(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	for _, status := range AllStatuses {
		if normalized == string(status) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// String returns the canonical string representation
func (s Status) String() string {
	return string(s)
}
