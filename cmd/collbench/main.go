// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

// Package collbench provides a load-generation tool for the record
// collection REST API.
package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/satori/go.uuid"
	"github.com/urfave/cli"
	"github.com/vinod-kayartaya/go-collection/collection"
	"github.com/vinod-kayartaya/go-collection/restclient"
)

type benchWork struct {
	Store       collection.Store
	Collection  collection.Collection
	Concurrency int
}

func (bench *benchWork) Run(runner func()) {
	wg := sync.WaitGroup{}
	wg.Add(bench.Concurrency)
	for i := 0; i < bench.Concurrency; i++ {
		go func() {
			defer wg.Done()
			runner()
		}()
	}
	wg.Wait()
}

var bench benchWork

// synthesize invents a record satisfying the collection's schema.
// Unique fields get fresh UUIDs so concurrent creates do not collide.
func synthesize(schema collection.Schema) map[string]interface{} {
	fields := make(map[string]interface{})
	for _, field := range schema.Fields {
		switch {
		case field.Kind == collection.NumberField:
			fields[field.Name] = rand.Intn(100000)
		case field.Format == collection.FormatEmail:
			fields[field.Name] = uuid.NewV4().String() + "@example.com"
		default:
			fields[field.Name] = uuid.NewV4().String()
		}
	}
	return fields
}

var addRecords = cli.Command{
	Name:  "add",
	Usage: "create many records",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "number of records to create",
		},
	},
	Action: func(c *cli.Context) {
		count := c.Int("count")
		schema := bench.Collection.Schema()
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()
		bench.Run(func() {
			for <-numbers != 0 {
				_, _ = bench.Collection.Create(synthesize(schema))
			}
		})
	},
}

var listRecords = cli.Command{
	Name:  "list",
	Usage: "page through every record",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "size",
			Value: 100,
			Usage: "fetch this many records per page",
		},
	},
	Action: func(c *cli.Context) {
		size := c.Int("size")
		bench.Run(func() {
			for number := 1; ; number++ {
				records, err := bench.Collection.List(collection.Page{
					Number: number,
					Size:   size,
				})
				if err != nil || len(records) == 0 {
					break
				}
			}
		})
	},
}

var clearRecords = cli.Command{
	Name:  "clear",
	Usage: "delete all of the records",
	Action: func(c *cli.Context) {
		for {
			records, err := bench.Collection.List(collection.Page{
				Number: 1,
				Size:   100,
			})
			if err != nil || len(records) == 0 {
				break
			}
			ids := make(chan string)
			go func() {
				for _, record := range records {
					ids <- record.ID()
				}
				close(ids)
			}()
			bench.Run(func() {
				for id := range ids {
					_ = bench.Collection.Delete(id)
				}
			})
		}
	},
}

var countRecords = cli.Command{
	Name:  "count",
	Usage: "print the record count",
	Action: func(c *cli.Context) {
		count, err := bench.Collection.Count()
		if err == nil {
			fmt.Println(count)
		}
	},
}

func main() {
	app := cli.NewApp()
	app.Usage = "benchmark the record collection service"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "url",
			Value: "http://localhost:5980/",
			Usage: "base URL of the collection REST server",
		},
		cli.StringFlag{
			Name:  "collection",
			Usage: "name of the collection to exercise",
		},
		cli.IntFlag{
			Name:  "concurrency",
			Value: runtime.NumCPU(),
			Usage: "run this many jobs in parallel",
		},
	}
	app.Commands = []cli.Command{
		addRecords,
		listRecords,
		clearRecords,
		countRecords,
	}
	app.Before = func(c *cli.Context) (err error) {
		bench.Store, err = restclient.New(c.String("url"))
		if err != nil {
			return
		}

		bench.Collection, err = bench.Store.Collection(collection.Schema{
			Name: c.String("collection"),
		})
		if err != nil {
			return
		}

		bench.Concurrency = c.Int("concurrency")

		return
	}
	app.RunAndExitOnError()
}
