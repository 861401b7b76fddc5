package notify

import (
	"context"

	"lendflow/core"
	"lendflow/pkg/id"
	"lendflow/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

type webhookSink struct {
	url string
}

// NewWebhook posts every report as json to url
func NewWebhook(url string) core.IReportSink {
	return &webhookSink{url: url}
}

func (s *webhookSink) Handle(ctx context.Context, report *core.Report) error {
	log := logger.FromContext(ctx).WithField("sink", "webhook")

	// same request id for the same run so receivers can drop duplicates
	requestID := id.UUIDFromString("report-" + report.RunID)
	resp, err := resthttp.WithRequestID(ctx, requestID).
		SetBody(report.Bytes()).
		Post(s.url)
	if err != nil {
		log.WithError(err).Errorln("post report")
		return err
	}

	return resthttp.ParseResponse(resp, nil)
}
