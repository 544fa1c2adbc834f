package scheduler

import (
	"time"
)

// State records whether the periodic refresh is scheduled and when it last
// and next runs. It is a value; Schedule and Advance return updated copies.
type State struct {
	Scheduled   bool
	Interval    time.Duration
	NextRun     time.Time
	LastRun     time.Time
	LastOutcome string
}

// Schedule registers the periodic refresh. It reports false and leaves st
// unchanged when the refresh is already scheduled or interval is not
// positive.
func Schedule(st State, interval time.Duration, now time.Time) (State, bool) {
	if st.Scheduled || interval <= 0 {
		return st, false
	}
	st.Scheduled = true
	st.Interval = interval
	st.NextRun = now.Add(interval)
	return st, true
}

// Advance records a finished run and moves NextRun one interval past now.
func Advance(st State, outcome string, now time.Time) State {
	st.LastRun = now
	st.LastOutcome = outcome
	if st.Scheduled {
		st.NextRun = now.Add(st.Interval)
	}
	return st
}

// Due reports whether a scheduled run should start at now.
func (s State) Due(now time.Time) bool {
	return s.Scheduled && !now.Before(s.NextRun)
}
