// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/vinod-kayartaya/go-collection/restdata"
)

// Authenticator is a negroni-compatible middleware that requires
// every request to carry one of a fixed set of opaque bearer tokens.
// Token issuance and rotation happen elsewhere; this only checks
// membership.  Failing requests get a 401 with the usual error body.
type Authenticator struct {
	tokens map[string]struct{}
	clk    clock.Clock
}

// NewAuthenticator builds an Authenticator accepting exactly the
// given tokens.  clk stamps error responses; pass nil for the wall
// clock.
func NewAuthenticator(tokens []string, clk clock.Clock) *Authenticator {
	if clk == nil {
		clk = clock.New()
	}
	accepted := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		accepted[token] = struct{}{}
	}
	return &Authenticator{tokens: accepted, clk: clk}
}

// ServeHTTP implements the negroni.Handler interface.
func (a *Authenticator) ServeHTTP(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	if a.allowed(req) {
		next(rw, req)
		return
	}
	rw.Header().Set("WWW-Authenticate", "Bearer")
	err := restdata.ErrUnauthorized{}
	status := err.HTTPStatus()
	writeResponse(rw, restdata.V1JSONMediaType, status,
		errorBody(err, status, a.clk.Now()))
}

func (a *Authenticator) allowed(req *http.Request) bool {
	token, ok := bearerToken(req)
	if !ok {
		return false
	}
	_, ok = a.tokens[token]
	return ok
}

// bearerToken extracts the token from an Authorization: Bearer
// header, if there is one.
func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
