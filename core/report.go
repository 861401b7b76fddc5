package core

import (
	"context"
	"encoding/json"
	"time"
)

// RunStatus terminal state of a run
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusAborted   RunStatus = "aborted"
)

// StepStatus outcome of one stage
type StepStatus string

const (
	StepStatusOK     StepStatus = "ok"
	StepStatusFailed StepStatus = "failed"
)

// StepReport outcome and timing of one stage
type StepReport struct {
	Name       string        `json:"name"`
	Status     StepStatus    `json:"status"`
	TxHash     string        `json:"tx_hash,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
	ErrorCode  ErrorCode     `json:"error_code,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// Report result of a workflow run
type Report struct {
	RunID      string             `json:"run_id"`
	Network    string             `json:"network"`
	Account    string             `json:"account"`
	Status     RunStatus          `json:"status"`
	FailedStep string             `json:"failed_step,omitempty"`
	ErrorCode  ErrorCode          `json:"error_code,omitempty"`
	Error      string             `json:"error,omitempty"`
	Err        error              `json:"-"`
	Plan       *BorrowPlan        `json:"plan,omitempty"`
	Positions  []*AccountPosition `json:"positions,omitempty"`
	Steps      []*StepReport      `json:"steps"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

// Completed all steps confirmed
func (r *Report) Completed() bool {
	return r.Status == RunStatusCompleted
}

// Abort marks the run aborted at step, err is kept as is
func (r *Report) Abort(step string, err error) {
	r.Status = RunStatusAborted
	r.FailedStep = step
	r.Err = err
	r.ErrorCode = CodeOf(err)
	r.Error = err.Error()
}

// Step finds the report of stage name
func (r *Report) Step(name string) (*StepReport, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}

	return nil, false
}

// Stages names of the stages that finished ok, in order
func (r *Report) Stages() []string {
	names := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s.Status == StepStatusOK {
			names = append(names, s.Name)
		}
	}

	return names
}

// Bytes json encoded report
func (r *Report) Bytes() []byte {
	bs, err := json.Marshal(r)
	if err != nil {
		return []byte("{}")
	}

	return bs
}

// IReportSink consumes finished reports
type IReportSink interface {
	Handle(ctx context.Context, report *Report) error
}
