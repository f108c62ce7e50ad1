// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net"
	"net/http"
	"sync"

	"github.com/benbjohnson/clock"
	"golang.org/x/time/rate"

	"github.com/vinod-kayartaya/go-collection/restdata"
)

// RateLimiter is a negroni-compatible middleware that throttles
// requests per client.  A client is identified by its bearer token if
// it sends one, otherwise by its remote address.  Requests over the
// limit get a 429 with the usual error body.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	clk      clock.Clock
}

// NewRateLimiter builds a RateLimiter allowing perSecond sustained
// requests per client with the given burst size.  clk stamps error
// responses; pass nil for the wall clock.
func NewRateLimiter(perSecond float64, burst int, clk clock.Clock) *RateLimiter {
	if clk == nil {
		clk = clock.New()
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		clk:      clk,
	}
}

// ServeHTTP implements the negroni.Handler interface.
func (l *RateLimiter) ServeHTTP(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	if l.limiterFor(clientKey(req)).Allow() {
		next(rw, req)
		return
	}
	err := restdata.ErrTooManyRequests{}
	status := err.HTTPStatus()
	writeResponse(rw, restdata.V1JSONMediaType, status,
		errorBody(err, status, l.clk.Now()))
}

func (l *RateLimiter) limiterFor(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, present := l.limiters[client]
	if !present {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[client] = limiter
	}
	return limiter
}

// clientKey names the client a request should be accounted against.
func clientKey(req *http.Request) string {
	if token, ok := bearerToken(req); ok {
		return "token:" + token
	}
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "addr:" + req.RemoteAddr
	}
	return "addr:" + host
}
