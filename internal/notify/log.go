package notify

import (
	"context"
	"log"
)

// LogNotifier writes events to the application log. It backs environments
// without a live push channel and doubles as the fallback sink in tests.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, evt Event) error {
	n.logger.Printf("notify | type=%s recipient=%s job=%v application=%v msg=%q",
		evt.Type, evt.RecipientID, evt.JobID, evt.ApplicationID, evt.Message)
	return nil
}
