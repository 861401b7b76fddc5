package notify

import (
	"context"

	"lendflow/core"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

type logSink struct{}

// NewLog renders reports through the context logger
func NewLog() core.IReportSink {
	return logSink{}
}

func (logSink) Handle(ctx context.Context, report *core.Report) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"run":     report.RunID,
		"network": report.Network,
		"account": report.Account,
	})

	for _, step := range report.Steps {
		fields := logrus.Fields(structs.Map(step))
		delete(fields, "name")
		entry := log.WithFields(fields).WithField("step", step.Name)
		if step.Status == core.StepStatusFailed {
			entry.Errorln(step.Name)
		} else {
			entry.Infoln(step.Name)
		}
	}

	if report.Completed() {
		log.WithField("elapsed", report.FinishedAt.Sub(report.StartedAt)).Infoln("run completed")
	} else {
		log.WithField("step", report.FailedStep).Errorf("run aborted: %s", report.Error)
	}

	return nil
}

// Multi fans a report out to every sink, the first error is returned after all ran
func Multi(sinks ...core.IReportSink) core.IReportSink {
	return multiSink(sinks)
}

type multiSink []core.IReportSink

func (m multiSink) Handle(ctx context.Context, report *core.Report) error {
	var first error
	for _, sink := range m {
		if err := sink.Handle(ctx, report); err != nil && first == nil {
			first = err
		}
	}

	return first
}
