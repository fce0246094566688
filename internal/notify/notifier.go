package notify

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Kind classifies a notification for the sink.
type Kind string

const (
	Success Kind = "success"
	Warning Kind = "warning"
	Info    Kind = "info"
	Error   Kind = "error"
)

// Notifier is a fire-and-forget notification sink. Implementations must not
// block the caller on delivery and must never return an error to it.
type Notifier interface {
	Notify(kind Kind, message string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(kind Kind, message string) {
	entry := n.logger.WithField("kind", string(kind))
	switch kind {
	case Warning:
		entry.Warn(message)
	case Error:
		entry.Error(message)
	default:
		entry.Info(message)
	}
}

// Fanout delivers each notification to every configured sink.
type Fanout []Notifier

func (f Fanout) Notify(kind Kind, message string) {
	for _, n := range f {
		n.Notify(kind, message)
	}
}
