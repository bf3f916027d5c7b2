package models

// SessionStats accumulates outcome counters across one interactive
// session. Mutated only from the orchestrating goroutine after pooled
// results are collected.
type SessionStats struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// Record tallies one finished video by its final status.
func (s *SessionStats) Record(status string) {
	switch status {
	case DLStatusCompleted:
		s.Succeeded++
	case DLStatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// Total returns the number of recorded outcomes.
func (s *SessionStats) Total() int {
	return s.Succeeded + s.Failed + s.Skipped
}
