// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command goinfer queries a Gene Ontology database and infers relationships
// between its terms.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	docopt "github.com/docopt/docopt-go"
	_ "github.com/lib/pq"
	"github.com/ntamas/biopython/config"
	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/ontology/memstore"
	"github.com/ntamas/biopython/ontology/sqlstore"
	"github.com/ntamas/biopython/util/debuglog"
	"github.com/ntamas/biopython/util/tracing"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	_ "modernc.org/sqlite"
)

var fmtr = message.NewPrinter(language.English)

const usage = `goinfer is a command-line tool for querying a Gene Ontology database and
inferring relationships between its terms.

Usage:
  goinfer [-c FILE -v -q --trace=HOST --memory] query SUBJECT RELATION OBJECT
  goinfer [-c FILE -v -q --trace=HOST] terms [--limit=N]
  goinfer [-c FILE -v -q --trace=HOST] orphans
  goinfer [-c FILE -v -q --trace=HOST] rules [--for=TYPE]
  goinfer [-c FILE -v -q --trace=HOST --memory] dot [--term=ID] FILE
  goinfer [-c FILE -v -q --trace=HOST --memory] propagate GAF

Options:
  -c FILE, --config=FILE   Configuration file [default: goinfer.json]
  -v, --verbose            Log debug messages.
  -q, --quiet              Only log warnings and errors.
  --memory                 Copy the whole ontology into memory first.
  --trace=HOST             Send OpenTracing traces to this Jaeger collector.
  --limit=N                List at most N terms.
  --for=TYPE               Only show the rules that can infer TYPE.
  --term=ID                Only draw the relationships leading up from this term.

Either SUBJECT or OBJECT may be "?" to leave it unbound. FILE is rendered with
Graphviz according to its extension (.pdf, .png or .svg), or written as dot
input for the .dot and .gv extensions. GAF is a Gene Ontology annotation file;
each of its annotations is also applied to every term its term is_a or is
part_of.

Examples:
  # Find everything lysosome is part of.
  goinfer query GO:0005764 part_of ?

  # Find everything that regulates growth.
  goinfer query ? regulates GO:0040007

  # Check a single relationship.
  goinfer query GO:0006350 is_a GO:0008152

  # Draw the ancestors of lysosome.
  goinfer dot --term GO:0005764 lysosome.svg

  # Apply the annotations of a GAF file up the ontology.
  goinfer propagate gene_association.sgd
`

type options struct {
	ConfigFile string `docopt:"--config"`
	Verbose    bool   `docopt:"--verbose"`
	Quiet      bool   `docopt:"--quiet"`
	Memory     bool   `docopt:"--memory"`

	// TracingCollector is a host:port or URL, or empty to disable tracing.
	TracingCollector string `docopt:"--trace"`

	// Query
	Query    bool   `docopt:"query"`
	Subject  string `docopt:"SUBJECT"`
	Relation string `docopt:"RELATION"`
	Object   string `docopt:"OBJECT"`

	// Terms
	Terms       bool   `docopt:"terms"`
	Limit       int
	LimitString string `docopt:"--limit"`

	// Orphans
	Orphans bool `docopt:"orphans"`

	// Rules
	Rules bool   `docopt:"rules"`
	For   string `docopt:"--for"`

	// Dot
	Dot      bool   `docopt:"dot"`
	Term     string `docopt:"--term"`
	Filename string `docopt:"FILE"`

	// Propagate
	Propagate bool   `docopt:"propagate"`
	GAFFile   string `docopt:"GAF"`
}

func parseArgs(argv []string) (*options, error) {
	opts, err := docopt.ParseArgs(usage, argv, "")
	if err != nil {
		return nil, fmt.Errorf("error parsing command-line arguments: %v", err)
	}
	var options options
	err = opts.Bind(&options)
	if err != nil {
		return nil, fmt.Errorf("error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	if options.LimitString != "" {
		options.Limit, err = strconv.Atoi(options.LimitString)
		if err != nil || options.Limit < 0 {
			return nil, fmt.Errorf("invalid --limit value: %q", options.LimitString)
		}
	}
	return &options, nil
}

func main() {
	options, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	debuglog.Configure(debuglog.Options{
		Verbose: options.Verbose,
		Quiet:   options.Quiet,
	})
	cfg, err := config.Load(options.ConfigFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if options.TracingCollector != "" {
		closer, err := tracing.New("goinfer", options.TracingCollector)
		if err != nil {
			log.WithError(err).Warn("Could not initialize OpenTracing tracer")
		} else {
			defer closer.Close()
		}
	}
	span, ctx := opentracing.StartSpanFromContext(context.Background(), "goinfer run")
	defer span.Finish()

	if options.Rules {
		if err := printRules(os.Stdout, cfg, options.For); err != nil {
			log.Fatalf("Error printing rules: %v", err)
		}
		return
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()
	var store ontology.Store = db
	if options.Memory {
		store, err = memstore.Copy(cfg.Database.DSN, db)
		if err != nil {
			log.Fatalf("Error copying ontology into memory: %v", err)
		}
	}

	switch {
	case options.Query:
		engine, err := cfg.Engine()
		if err != nil {
			log.Fatalf("Error building inference engine: %v", err)
		}
		if err := query(ctx, os.Stdout, engine, store, options); err != nil {
			log.Fatalf("Error executing query: %v", err)
		}
	case options.Terms:
		if err := listTerms(os.Stdout, store, options.Limit); err != nil {
			log.Fatalf("Error listing terms: %v", err)
		}
	case options.Orphans:
		if err := listOrphans(os.Stdout, store); err != nil {
			log.Fatalf("Error listing orphaned terms: %v", err)
		}
	case options.Dot:
		if err := drawGraph(store, options); err != nil {
			log.Fatalf("Error drawing graph: %v", err)
		}
	case options.Propagate:
		engine, err := cfg.Engine()
		if err != nil {
			log.Fatalf("Error building inference engine: %v", err)
		}
		if err := propagate(ctx, os.Stdout, engine, store, options.GAFFile); err != nil {
			log.Fatalf("Error propagating annotations: %v", err)
		}
	default:
		log.Fatalf("command not implemented")
	}
}

func openDatabase(cfg *config.Config) (*sqlstore.Store, error) {
	style, err := cfg.Database.PlaceholderStyle()
	if err != nil {
		return nil, err
	}
	db, err := sqlstore.Open(cfg.Database.Driver, cfg.Database.DSN, style)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"store": db.String(),
	}).Debug("Opened database")
	return db, nil
}
