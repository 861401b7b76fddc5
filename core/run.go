package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Run journal row of a finished workflow run
type Run struct {
	ID         int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	RunID      string         `sql:"size:36;unique_index:idx_runs_run_id" json:"run_id,omitempty"`
	Network    string         `sql:"size:32" json:"network,omitempty"`
	Account    string         `sql:"size:42;index:idx_runs_account" json:"account,omitempty"`
	Status     RunStatus      `sql:"size:16" json:"status,omitempty"`
	Stages     pq.StringArray `sql:"type:varchar(1024)" json:"stages,omitempty"`
	FailedStep string         `sql:"size:32" json:"failed_step,omitempty"`
	ErrorCode  ErrorCode      `sql:"default:0" json:"error_code,omitempty"`
	Error      string         `sql:"type:TEXT" json:"error,omitempty"`
	Report     types.JSONText `sql:"type:TEXT" json:"report,omitempty"`
	CreatedAt  time.Time      `sql:"default:CURRENT_TIMESTAMP;index:idx_runs_created_at" json:"created_at,omitempty"`
	UpdatedAt  time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// NewRunFromReport journal row of report
func NewRunFromReport(report *Report) *Run {
	return &Run{
		RunID:      report.RunID,
		Network:    report.Network,
		Account:    report.Account,
		Status:     report.Status,
		Stages:     report.Stages(),
		FailedStep: report.FailedStep,
		ErrorCode:  report.ErrorCode,
		Error:      report.Error,
		Report:     report.Bytes(),
	}
}

// IRunStore run journal
type IRunStore interface {
	Create(ctx context.Context, run *Run) error
	FindByRunID(ctx context.Context, runID string) (*Run, error)
	List(ctx context.Context, account string, limit int) ([]*Run, error)
}
