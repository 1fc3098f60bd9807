package domain

// JobResult is one classified jobfolder: an absolute directory path paired
// with the status derived from its contents. Results are created once during
// a walk and never mutated.
type JobResult struct {
	Path   string
	Status Status
}
