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

package main

import (
	"context"
	"io"
	"time"

	"github.com/ntamas/biopython/infer"
	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/util/table"
	log "github.com/sirupsen/logrus"
)

// endpoint returns nil for an unbound query endpoint and id otherwise.
func endpoint(id string) interface{} {
	if id == "?" || id == "" {
		return nil
	}
	return id
}

func query(ctx context.Context, out io.Writer, engine *infer.Engine, store ontology.Store, options *options) error {
	q, err := infer.NewQuery(store, endpoint(options.Subject), options.Relation, endpoint(options.Object))
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := engine.Solve(ctx, store, q)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"query":      q.String(),
		"facts":      len(res.Facts),
		"expansions": res.Expansions,
		"took":       time.Since(start),
	}).Debug("Solved query")
	printResult(out, res)
	return nil
}

func printResult(out io.Writer, res *infer.Result) {
	if res.Query.Kind() == "bound" {
		if res.Holds {
			fmtr.Fprintf(out, "%v holds: %v\n", res.Query, res.Facts[0])
		} else {
			fmtr.Fprintf(out, "%v does not hold\n", res.Query)
		}
		fmtr.Fprintf(out, "Expanded %d relationships\n", res.Expansions)
		return
	}
	t := [][]string{
		{"Subject", "Relation", "Object", "Name"},
	}
	for _, f := range res.Facts {
		found := f.Object
		if res.Query.Subject == nil {
			found = f.Subject
		}
		t = append(t, []string{f.Subject.ID(), f.Type.String(), f.Object.ID(), found.Name()})
	}
	table.PrettyPrint(out, t, table.HeaderRow|table.SkipEmpty)
	fmtr.Fprintf(out, "Found %d relationships, expanded %d\n", len(res.Facts), res.Expansions)
}
