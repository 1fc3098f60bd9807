package domain

// StatusSet is a set of statuses used for include/exclude filtering
type StatusSet map[Status]struct{}

// ParseStatusSet builds a StatusSet from user-supplied strings. The first
// unparseable string fails the whole construction, so filter configuration
// errors surface before any directory is visited.
func ParseStatusSet(strs []string) (StatusSet, error) {
	set := make(StatusSet, len(strs))
	for _, s := range strs {
		status, err := ParseStatus(s)
		if err != nil {
			return nil, err
		}
		set[status] = struct{}{}
	}
	return set, nil
}

// Contains reports whether the set holds the given status
func (ss StatusSet) Contains(status Status) bool {
	_, ok := ss[status]
	return ok
}

// Empty reports whether the set has no members. An empty set means
// "no filtering", not "match nothing".
func (ss StatusSet) Empty() bool {
	return len(ss) == 0
}
