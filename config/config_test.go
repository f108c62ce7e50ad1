// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/gateway"
)

func writeFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0666))
	return path
}

func TestServerConfig(t *testing.T) {
	path := writeFile(t, `
collections:
  - name: customers
    identity: token
    fields:
      - name: name
        required: true
      - name: city
      - name: email
        required: true
        unique: true
        format: email
      - name: phone
        required: true
        unique: true
  - name: employees
    identity: serial
    fields:
      - name: name
        required: true
      - name: salary
        kind: number
        required: true
auth:
  tokens:
    - sekrit
    - hunter2
rate_limit:
  per_second: 10
  burst: 20
uploads:
  dir: /var/lib/collectiond/uploads
  extensions: [".png", ".jpg"]
`)
	cfg, err := LoadServer(path)
	require.NoError(t, err)

	require.Len(t, cfg.Collections, 2)
	customers := cfg.Collections[0]
	assert.Equal(t, "customers", customers.Name)
	assert.Equal(t, collection.TokenIdentity, customers.Identity)
	require.Len(t, customers.Fields, 4)
	assert.Equal(t, collection.Field{
		Name:     "email",
		Kind:     collection.StringField,
		Required: true,
		Unique:   true,
		Format:   collection.FormatEmail,
	}, customers.Fields[2])

	employees := cfg.Collections[1]
	assert.Equal(t, collection.SerialIdentity, employees.Identity)
	assert.Equal(t, collection.NumberField, employees.Fields[1].Kind)

	assert.Equal(t, []string{"sekrit", "hunter2"}, cfg.Auth.Tokens)
	assert.Equal(t, 10.0, cfg.RateLimit.PerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, "/var/lib/collectiond/uploads", cfg.Uploads.Dir)
	assert.Equal(t, []string{".png", ".jpg"}, cfg.Uploads.Extensions)
}

func TestServerConfigDefaults(t *testing.T) {
	path := writeFile(t, `
collections:
  - name: books
    fields:
      - name: title
        required: true
`)
	cfg, err := LoadServer(path)
	require.NoError(t, err)

	// Unstated enumerations fall back to their zero values.
	books := cfg.Collections[0]
	assert.Equal(t, collection.SerialIdentity, books.Identity)
	assert.Equal(t, collection.StringField, books.Fields[0].Kind)

	assert.Empty(t, cfg.Auth.Tokens)
	assert.Zero(t, cfg.RateLimit.PerSecond)
	assert.Empty(t, cfg.Uploads.Dir)
}

func TestBadEnumeration(t *testing.T) {
	path := writeFile(t, `
collections:
  - name: books
    identity: guid
    fields:
      - name: title
`)
	_, err := LoadServer(path)
	assert.Error(t, err)
}

func TestGatewayConfig(t *testing.T) {
	path := writeFile(t, `
routes:
  - prefix: /customers
    upstream: http://localhost:6020
  - prefix: /products
    upstream: http://localhost:6010
`)
	cfg, err := LoadGateway(path)
	require.NoError(t, err)
	assert.Equal(t, []gateway.Route{
		{Prefix: "/customers", Upstream: "http://localhost:6020"},
		{Prefix: "/products", Upstream: "http://localhost:6010"},
	}, cfg.Routes)
}

func TestMissingFile(t *testing.T) {
	_, err := LoadServer(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
