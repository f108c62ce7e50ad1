// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vinod-kayartaya/go-collection/collection"
)

var recordCounts = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: "collectiond",
		Name:      "records",
		Help:      "Number of records per collection",
	},
	[]string{
		"collection",
	},
)

func init() {
	prometheus.MustRegister(recordCounts)
}

// observe periodically republishes the per-collection record counts
// as Prometheus gauges.  It never returns and wants to be run in a
// goroutine.
func observe(store collection.Store) {
	for {
		summary, err := store.Summarize()
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Warn("Could not summarize collections")
		}
		for _, record := range summary {
			recordCounts.With(prometheus.Labels{
				"collection": record.Collection,
			}).Set(float64(record.Count))
		}
		time.Sleep(15 * time.Second)
	}
}
