package response

import (
	"time"
)

type RefreshResponse struct {
	RunID      string    `json:"run_id"`
	State      string    `json:"state"`
	Checked    int       `json:"checked"`
	Failed     int       `json:"failed"`
	Changed    []int64   `json:"changed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func RefreshToResponse(runID, state string, checked, failed int, changed []int64, startedAt, finishedAt time.Time) RefreshResponse {
	if changed == nil {
		changed = []int64{}
	}
	return RefreshResponse{
		RunID:      runID,
		State:      state,
		Checked:    checked,
		Failed:     failed,
		Changed:    changed,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
}
