// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/negroni"
	"github.com/vinod-kayartaya/go-collection/memory"
)

func newProtectedServer(t *testing.T, middleware negroni.Handler) *httptest.Server {
	router, err := NewRouter(Config{
		Store:   memory.New(),
		Schemas: testSchemas(),
	})
	if err != nil {
		t.Fatal(err)
	}
	n := negroni.New(middleware)
	n.UseHandler(router)
	srv := httptest.NewServer(n)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, hdr map[string]string) (*http.Response, map[string]interface{}) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for key, value := range hdr {
		req.Header.Set(key, value)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := ioutil.ReadAll(resp.Body)
	var decoded map[string]interface{}
	if len(data) > 0 {
		json.Unmarshal(data, &decoded)
	}
	return resp, decoded
}

func TestAuthenticator(t *testing.T) {
	srv := newProtectedServer(t, NewAuthenticator([]string{"sekrit"}, nil))

	resp, body := get(t, srv.URL+"/api/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	assert.Equal(t, "missing or invalid bearer token", body["message"])

	resp, _ = get(t, srv.URL+"/api/customers",
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/api/customers",
		map[string]string{"Authorization": "Basic sekrit"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = get(t, srv.URL+"/api/customers",
		map[string]string{"Authorization": "Bearer sekrit"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	// One request per hour with a burst of 2: the third request in
	// quick succession must be rejected.
	srv := newProtectedServer(t, NewRateLimiter(1.0/3600, 2, nil))

	for i := 0; i < 2; i++ {
		resp, _ := get(t, srv.URL+"/api/customers", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, body := get(t, srv.URL+"/api/customers", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "rate limit exceeded", body["message"])
}

func TestRateLimiterPerClient(t *testing.T) {
	srv := newProtectedServer(t, NewRateLimiter(1.0/3600, 1, nil))

	resp, _ := get(t, srv.URL+"/api/customers",
		map[string]string{"Authorization": "Bearer alice"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = get(t, srv.URL+"/api/customers",
		map[string]string{"Authorization": "Bearer alice"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// A different client has its own budget.
	resp, _ = get(t, srv.URL+"/api/customers",
		map[string]string{"Authorization": "Bearer bob"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
