package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/unreadcache"
)

type LogrusLogger struct{ E *logrus.Entry }

var _ unreadcache.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f unreadcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f unreadcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f unreadcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f unreadcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
