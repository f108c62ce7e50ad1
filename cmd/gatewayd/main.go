// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package gatewayd provides the API gateway daemon.  It fronts
// several record servers behind a single address, dispatching on URL
// path prefixes declared in its configuration file.
package main

import (
	"flag"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
	"github.com/vinod-kayartaya/go-collection/config"
	"github.com/vinod-kayartaya/go-collection/gateway"
)

func main() {
	httpBind := flag.String("http", ":8000",
		"[ip]:port for the public HTTP interface")
	configFile := flag.String("config", "", "gateway configuration YAML file")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	flag.Parse()

	if *configFile == "" {
		logrus.Fatal("A -config file declaring the routes is required")
		return
	}
	cfg, err := config.LoadGateway(*configFile)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not load YAML configuration")
		return
	}
	if len(cfg.Routes) == 0 {
		logrus.Fatal("Configuration declares no routes")
		return
	}

	logger := logrus.StandardLogger()
	if *logRequests {
		logger = &logrus.Logger{
			Out:       logger.Out,
			Formatter: logger.Formatter,
			Hooks:     logger.Hooks,
			Level:     logrus.DebugLevel,
		}
	}
	gw, err := gateway.New(cfg.Routes, logger)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not build routing table")
		return
	}

	n := negroni.New(negroni.NewRecovery())
	n.UseHandler(gw)

	logrus.WithFields(logrus.Fields{
		"http":   *httpBind,
		"routes": len(cfg.Routes),
	}).Info("Serving gateway")
	err = http.ListenAndServe(*httpBind, n)
	logrus.WithFields(logrus.Fields{
		"err": err,
	}).Fatal("HTTP server stopped")
}
