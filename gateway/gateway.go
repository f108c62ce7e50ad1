// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package gateway provides a small API gateway: a routing table from
// URL path prefixes to upstream HTTP services.  Requests whose path
// matches a route are reverse-proxied to that route's upstream;
// requests matching no route get a 404.  An unreachable upstream is
// reported as a 502, not a transport error.
//
// It fans out a single public endpoint over several single-purpose
// record services, each typically a collectiond serving one or two
// collections.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
	"github.com/vinod-kayartaya/go-collection/restdata"
)

// Route maps one URL path prefix onto one upstream service.
type Route struct {
	// Prefix is the leading path to match, e.g. "/customers".  It
	// must begin with a slash.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// Upstream is the base URL of the backing service, e.g.
	// "http://localhost:6020".  The matched prefix is stripped
	// before forwarding, so a request for /customers/api/customers
	// reaches this upstream as /api/customers.
	Upstream string `mapstructure:"upstream" yaml:"upstream"`
}

// Gateway is an http.Handler dispatching requests over a fixed route
// table.
type Gateway struct {
	router *mux.Router
	logger *logrus.Logger
}

// New builds a gateway from a route table.  Route order matters: the
// first matching prefix wins, so longer prefixes should come first.
// Returns an error if any route has a malformed prefix or upstream
// URL.
func New(routes []Route, logger *logrus.Logger) (*Gateway, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := &Gateway{
		router: mux.NewRouter(),
		logger: logger,
	}
	for _, route := range routes {
		if !strings.HasPrefix(route.Prefix, "/") {
			return nil, fmt.Errorf("route prefix %q does not start with a slash", route.Prefix)
		}
		target, err := url.Parse(route.Upstream)
		if err != nil {
			return nil, err
		}
		if target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("route upstream %q is not an absolute URL", route.Upstream)
		}
		prefix := strings.TrimSuffix(route.Prefix, "/")
		g.router.PathPrefix(prefix).Handler(
			http.StripPrefix(prefix, g.proxy(prefix, target)))
	}
	g.router.NotFoundHandler = http.HandlerFunc(g.notFound)
	return g, nil
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	g.router.ServeHTTP(w, req)
}

func (g *Gateway) proxy(prefix string, target *url.URL) http.Handler {
	rp := httputil.NewSingleHostReverseProxy(target)
	rp.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		g.logger.WithFields(logrus.Fields{
			"prefix":   prefix,
			"upstream": target.String(),
			"err":      err,
		}).Error("Upstream request failed")
		g.writeError(w, http.StatusBadGateway, "upstream unreachable")
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		g.logger.WithFields(logrus.Fields{
			"method":   req.Method,
			"path":     req.URL.Path,
			"prefix":   prefix,
			"upstream": target.String(),
		}).Debug("Forwarding request")
		rp.ServeHTTP(w, req)
	})
}

func (g *Gateway) notFound(w http.ResponseWriter, req *http.Request) {
	g.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
	}).Debug("No route")
	g.writeError(w, http.StatusNotFound, fmt.Sprintf("no route for %v", req.URL.Path))
}

// writeError emits the same JSON error body the record services
// produce, so clients see one error shape through the gateway.
func (g *Gateway) writeError(w http.ResponseWriter, status int, message string) {
	resp := restdata.ErrorResponse{
		Error:   "error",
		Message: message,
		Code:    status,
	}
	var data []byte
	encoder := codec.NewEncoderBytes(&data, &codec.JsonHandle{})
	if err := encoder.Encode(resp); err != nil {
		g.logger.WithField("err", err).Error("Could not encode error response")
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", restdata.V1JSONMediaType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
