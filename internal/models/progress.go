package models

// ProgressTable maps each project status to a completion percentage.
// The values are display tuning, not business rules, so deployments may
// override them through configuration.
type ProgressTable map[ProjectStatus]int

// DefaultProgressTable returns the canonical mapping.
func DefaultProgressTable() ProgressTable {
	return ProgressTable{
		StatusNotStarted: 0,
		StatusOnHold:     20,
		StatusInProgress: 40,
		StatusWaitingBA:  60,
		StatusNotReport:  80,
		StatusCompleted:  100,
	}
}

// Percent looks up the percentage for a status. The second return is
// false for statuses outside the canonical set.
func (t ProgressTable) Percent(s ProjectStatus) (int, bool) {
	p, ok := t[s]
	return p, ok
}
