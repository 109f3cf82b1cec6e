package notify

import (
	"mystorefront/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// LogNotifier writes every notification to the diagnostic log. It is the
// always-present tail of the notifier chain; interactive surfaces (the shell
// console printer) sit in front of it.
type LogNotifier struct {
	logger log.Logger
}

// NewLogNotifier creates the notifier. Panics on nil logger.
func NewLogNotifier(logger log.Logger) *LogNotifier {
	return &LogNotifier{
		logger: log.WithPrefix(helpers.NilPanic(logger, "adapters.notify.log.go: logger is required"), "component", "Notifier"),
	}
}

func (n *LogNotifier) Success(message string) {
	level.Info(n.logger).Log("notify", "success", "msg", message)
}

func (n *LogNotifier) Warning(message string) {
	level.Warn(n.logger).Log("notify", "warning", "msg", message)
}

func (n *LogNotifier) Error(message string) {
	level.Error(n.logger).Log("notify", "error", "msg", message)
}
