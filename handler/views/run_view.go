package views

import (
	"time"

	"lendflow/core"
)

// Run journal row without the raw report
type Run struct {
	RunID      string    `json:"run_id"`
	Network    string    `json:"network"`
	Account    string    `json:"account"`
	Status     string    `json:"status"`
	Stages     []string  `json:"stages"`
	FailedStep string    `json:"failed_step,omitempty"`
	ErrorCode  string    `json:"error_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func RunView(run *core.Run) Run {
	view := Run{
		RunID:      run.RunID,
		Network:    run.Network,
		Account:    run.Account,
		Status:     string(run.Status),
		Stages:     run.Stages,
		FailedStep: run.FailedStep,
		Error:      run.Error,
		CreatedAt:  run.CreatedAt,
	}

	if run.ErrorCode != 0 {
		view.ErrorCode = run.ErrorCode.String()
	}

	return view
}

func RunsView(runs []*core.Run) []Run {
	views := make([]Run, 0, len(runs))
	for _, run := range runs {
		views = append(views, RunView(run))
	}

	return views
}
