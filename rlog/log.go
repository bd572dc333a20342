// Package rlog wraps logrus with the field conventions the mux and endpoint
// code use throughout: every log line is tagged with the session it belongs
// to, matching the cmd/get style of structured logging (logrus.Infof with an
// inline summary) but with fields broken out for log aggregation
package rlog

import (
	"github.com/sirupsen/logrus"
)

// Logger is a session-scoped logrus entry
type Logger struct {
	*logrus.Entry
}

// Base is the shared root logger every session Logger derives from
var Base = logrus.StandardLogger()

// ForSession returns a Logger tagged with the given session id
func ForSession(sessionID string) Logger {
	return Logger{Base.WithField("session", sessionID)}
}

// SetLevel adjusts the base logger's verbosity, e.g. from a loaded
// rconfig.Config
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Base.SetLevel(lvl)
	return nil
}
