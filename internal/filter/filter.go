// Package filter narrows a walk's result stream by status set membership.
package filter

import (
	"iter"

	"github.com/atomsim/jobtool/internal/domain"
)

// Apply lazily filters results by the include and exclude sets. A non-empty
// include set keeps only its members; the exclude set then removes its
// members from whatever survived. Exclude is applied after include, so a
// status present in both sets is dropped. Empty sets filter nothing.
func Apply(results iter.Seq[domain.JobResult], include, exclude domain.StatusSet) iter.Seq[domain.JobResult] {
	if include.Empty() && exclude.Empty() {
		return results
	}
	return func(yield func(domain.JobResult) bool) {
		for r := range results {
			if !include.Empty() && !include.Contains(r.Status) {
				continue
			}
			if exclude.Contains(r.Status) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}
