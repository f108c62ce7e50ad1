// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package gateway

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoUpstream reports back which upstream served the request and
// what path it saw after prefix stripping.
func echoUpstream(t *testing.T, name string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]string{
			"upstream": name,
			"path":     req.URL.Path,
		})
		if err != nil {
			t.Error(err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	return logger
}

func newGateway(t *testing.T, routes []Route) *httptest.Server {
	g, err := New(routes, quietLogger())
	require.NoError(t, err)
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &decoded))
	}
	return resp, decoded
}

func TestRouting(t *testing.T) {
	customers := echoUpstream(t, "customers")
	products := echoUpstream(t, "products")
	gw := newGateway(t, []Route{
		{Prefix: "/customers", Upstream: customers.URL},
		{Prefix: "/products", Upstream: products.URL},
	})

	resp, body := get(t, gw.URL+"/customers/api/customers")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "customers", body["upstream"])
	assert.Equal(t, "/api/customers", body["path"])

	resp, body = get(t, gw.URL+"/products/api/products/17")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "products", body["upstream"])
	assert.Equal(t, "/api/products/17", body["path"])
}

func TestNoRoute(t *testing.T) {
	customers := echoUpstream(t, "customers")
	gw := newGateway(t, []Route{
		{Prefix: "/customers", Upstream: customers.URL},
	})

	resp, body := get(t, gw.URL+"/orders/api/orders")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error", body["error"])
	assert.Equal(t, "no route for /orders/api/orders", body["message"])
}

func TestUpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	gw := newGateway(t, []Route{
		{Prefix: "/customers", Upstream: dead.URL},
	})

	resp, body := get(t, gw.URL+"/customers/api/customers")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "upstream unreachable", body["message"])
}

func TestBadRoutes(t *testing.T) {
	_, err := New([]Route{{Prefix: "customers", Upstream: "http://localhost:6020"}}, quietLogger())
	assert.Error(t, err)

	_, err = New([]Route{{Prefix: "/customers", Upstream: "localhost:6020"}}, quietLogger())
	assert.Error(t, err)
}

func TestFirstMatchWins(t *testing.T) {
	api := echoUpstream(t, "customers-api")
	everything := echoUpstream(t, "customers")
	gw := newGateway(t, []Route{
		{Prefix: "/customers/api", Upstream: api.URL},
		{Prefix: "/customers", Upstream: everything.URL},
	})

	_, body := get(t, gw.URL+"/customers/api/customers")
	assert.Equal(t, "customers-api", body["upstream"])

	_, body = get(t, gw.URL+"/customers/health")
	assert.Equal(t, "customers", body["upstream"])
}
