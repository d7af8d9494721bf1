package notification

import (
	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/logger"
)

// LogNotifier writes notifications to the process log. It is the default sink
// when no webhook is configured.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Send implements Notifier.
func (n *LogNotifier) Send(title, body string) {
	n.logger.Info("Notification",
		zap.String("title", title),
		zap.String("body", body),
	)
}
