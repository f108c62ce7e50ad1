// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package collectiond provides the record collection server daemon.
// It serves the REST API for the collections named in its
// configuration file over a pluggable storage backend, with optional
// bearer-token authentication, per-client rate limiting, and photo
// attachment storage.  Prometheus metrics are exposed on /metrics.
package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
	"github.com/vinod-kayartaya/go-collection/backend"
	"github.com/vinod-kayartaya/go-collection/cache"
	"github.com/vinod-kayartaya/go-collection/config"
	"github.com/vinod-kayartaya/go-collection/restserver"
	"github.com/vinod-kayartaya/go-collection/uploads"
)

func main() {
	var err error

	httpBind := flag.String("http", ":5980",
		"[ip]:port for HTTP REST interface")
	storage := backend.Backend{Implementation: "memory", Address: ""}
	flag.Var(&storage, "backend", "impl[:address] of record storage")
	configFile := flag.String("config", "", "server configuration YAML file")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	flag.Parse()

	if *configFile == "" {
		logrus.Fatal("A -config file declaring the collections is required")
		return
	}
	cfg, err := config.LoadServer(*configFile)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not load YAML configuration")
		return
	}
	if len(cfg.Collections) == 0 {
		logrus.Fatal("Configuration declares no collections")
		return
	}

	store, err := storage.Store()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not create storage backend")
		return
	}
	defer store.Close()
	store = cache.New(store)

	serverCfg := restserver.Config{
		Store:   store,
		Schemas: cfg.Collections,
	}
	if cfg.Uploads.Dir != "" {
		serverCfg.Uploads, err = uploads.New(cfg.Uploads.Dir, cfg.Uploads.Extensions)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not open upload directory")
			return
		}
	}

	r := mux.NewRouter()
	if err = restserver.PopulateRouter(r, serverCfg); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("Could not open collections")
		return
	}
	r.Handle("/metrics", promhttp.Handler())

	n := negroni.New()
	if *logRequests {
		n.Use(newRequestLogger())
	}
	if len(cfg.Auth.Tokens) > 0 {
		n.Use(restserver.NewAuthenticator(cfg.Auth.Tokens, nil))
	}
	if cfg.RateLimit.PerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		n.Use(restserver.NewRateLimiter(cfg.RateLimit.PerSecond, burst, nil))
	}
	n.UseHandler(r)

	go observe(store)

	logrus.WithFields(logrus.Fields{
		"http":    *httpBind,
		"backend": storage.String(),
	}).Info("Serving collections")
	err = http.ListenAndServe(*httpBind, n)
	logrus.WithFields(logrus.Fields{
		"err": err,
	}).Fatal("HTTP server stopped")
}
