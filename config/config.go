// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package config loads the YAML configuration files for the record
// server and gateway daemons.  Files are first unmarshaled to generic
// maps and then decoded onto typed structures with mapstructure, so
// enumerated values such as field kinds and identity schemes can be
// written as their string forms.
package config

import (
	"encoding"
	"io/ioutil"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/gateway"
	"gopkg.in/yaml.v2"
)

// Server configures one collectiond instance.
type Server struct {
	// Collections declares the collections this server serves, in
	// presentation order.  A server with no collections is a
	// configuration error.
	Collections []collection.Schema `mapstructure:"collections"`

	// Auth configures bearer-token authentication.  With no
	// tokens the server is open.
	Auth Auth `mapstructure:"auth"`

	// RateLimit configures per-client request throttling.  A zero
	// PerSecond disables it.
	RateLimit RateLimit `mapstructure:"rate_limit"`

	// Uploads configures photo attachment storage.  With an empty
	// Dir the photo endpoints are not served.
	Uploads Uploads `mapstructure:"uploads"`
}

// Auth lists the accepted bearer tokens.
type Auth struct {
	Tokens []string `mapstructure:"tokens"`
}

// RateLimit bounds the per-client request rate.
type RateLimit struct {
	// PerSecond is the sustained request rate each client may
	// hold.
	PerSecond float64 `mapstructure:"per_second"`

	// Burst is the instantaneous burst each client may spend.
	// Defaults to 1 if a rate is set and this is not.
	Burst int `mapstructure:"burst"`
}

// Uploads configures the photo attachment store.
type Uploads struct {
	// Dir is the root directory for stored files.
	Dir string `mapstructure:"dir"`

	// Extensions whitelists the accepted file extensions,
	// including the leading dot.  Empty means the store's
	// defaults.
	Extensions []string `mapstructure:"extensions"`
}

// Gateway configures one gatewayd instance.
type Gateway struct {
	// Routes is the prefix routing table, in match order.
	Routes []gateway.Route `mapstructure:"routes"`
}

// LoadServer reads and decodes a collectiond configuration file.
func LoadServer(filename string) (Server, error) {
	var cfg Server
	err := load(filename, &cfg)
	return cfg, err
}

// LoadGateway reads and decodes a gatewayd configuration file.
func LoadGateway(filename string) (Gateway, error) {
	var cfg Gateway
	err := load(filename, &cfg)
	return cfg, err
}

func load(filename string, out interface{}) error {
	bytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	var raw map[string]interface{}
	if err = yaml.Unmarshal(bytes, &raw); err != nil {
		return err
	}
	return Decode(raw, out)
}

// Decode maps a generic unmarshaled object onto a typed structure.
// String values are accepted anywhere the target type knows how to
// unmarshal text, which covers the schema enumerations.
func Decode(raw, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decodeStringAsText,
		Result:     out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// decodeStringAsText is a mapstructure decode hook that accepts a
// string wherever the target type implements encoding.TextUnmarshaler.
func decodeStringAsText(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	ptr := reflect.New(to)
	unmarshaler, ok := ptr.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return data, nil
	}
	if err := unmarshaler.UnmarshalText([]byte(data.(string))); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}
