// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// requestLogger is a negroni-compatible middleware that logs every
// request at debug level.
type requestLogger struct {
	logger *logrus.Logger
}

func newRequestLogger() requestLogger {
	stdlog := logrus.StandardLogger()
	logger := &logrus.Logger{
		Out:       stdlog.Out,
		Formatter: stdlog.Formatter,
		Hooks:     stdlog.Hooks,
		Level:     logrus.DebugLevel,
	}
	return requestLogger{logger: logger}
}

// ServeHTTP implements the negroni.Handler interface.
func (l requestLogger) ServeHTTP(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	start := time.Now()
	entry := l.logger.WithFields(logrus.Fields{
		"remote": req.RemoteAddr,
		"method": req.Method,
		"path":   req.URL.Path,
	})
	entry.Debug("Request")
	next(rw, req)
	if res, ok := rw.(negroni.ResponseWriter); ok {
		entry = entry.WithField("status", res.Status())
	}
	entry.WithField("duration", time.Since(start)).Debug("Response")
}
