// Package logrus adapts a *logrus.Entry to cachestore.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/cachestore"
)

var _ cachestore.Logger = Logger{}

// Logger forwards store events to E. The "err" field is attached with WithError.
type Logger struct{ E *logrus.Entry }

// New returns a Logger over e; nil uses the logrus standard logger.
func New(e *logrus.Entry) Logger {
	if e == nil {
		e = logrus.NewEntry(logrus.StandardLogger())
	}
	return Logger{E: e.WithField("component", "cachestore")}
}

func (l Logger) Debug(msg string, f cachestore.Fields) { l.entry(f).Debug(msg) }
func (l Logger) Info(msg string, f cachestore.Fields)  { l.entry(f).Info(msg) }
func (l Logger) Warn(msg string, f cachestore.Fields)  { l.entry(f).Warn(msg) }
func (l Logger) Error(msg string, f cachestore.Fields) { l.entry(f).Error(msg) }

func (l Logger) entry(f cachestore.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	lf := make(logrus.Fields, len(f))
	var err error
	for k, v := range f {
		if e, ok := v.(error); ok && k == "err" {
			err = e
			continue
		}
		lf[k] = v
	}
	e := l.E.WithFields(lf)
	if err != nil {
		e = e.WithError(err)
	}
	return e
}
