package syncer

import "go.uber.org/zap"

// Notifier is the toast analogue: every failed mutation is reported
// through it with the most specific message available.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (fn NotifierFunc) Notify(msg string) {
	fn(msg)
}

// logNotifier is the default - mutation failures land in the log when
// nothing else is wired up.
type logNotifier struct {
	logg *zap.SugaredLogger
}

func (n logNotifier) Notify(msg string) {
	n.logg.Warn(msg)
}
