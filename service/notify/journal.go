package notify

import (
	"context"

	"lendflow/core"
)

type journalSink struct {
	runs core.IRunStore
}

// NewJournal stores every report in the run journal
func NewJournal(runs core.IRunStore) core.IReportSink {
	return &journalSink{runs: runs}
}

func (s *journalSink) Handle(ctx context.Context, report *core.Report) error {
	return s.runs.Create(ctx, core.NewRunFromReport(report))
}
