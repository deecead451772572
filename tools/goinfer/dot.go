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
	"fmt"
	"io"

	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/util/graphviz"
)

var edgeColors = map[ontology.RelType]string{
	ontology.IsA:                 "black",
	ontology.PartOf:              "blue",
	ontology.Regulates:           "orange",
	ontology.PositivelyRegulates: "green",
	ontology.NegativelyRegulates: "red",
}

func drawGraph(store ontology.Store, options *options) error {
	rels, err := graphEdges(store, options.Term)
	if err != nil {
		return err
	}
	return graphviz.Create(options.Filename, func(w io.Writer) {
		writeDot(w, rels)
	}, graphviz.Options{})
}

// graphEdges returns every stored relationship if termID is empty. Otherwise
// it returns the relationships reachable by following edges from the term to
// their objects, breadth first.
func graphEdges(store ontology.Store, termID string) ([]ontology.Relationship, error) {
	if termID == "" {
		return store.Relationships(nil, nil)
	}
	start, err := store.TermByID(termID)
	if err != nil {
		return nil, err
	}
	var res []ontology.Relationship
	visited := map[string]bool{start.ID(): true}
	queue := []*ontology.Term{start}
	for len(queue) > 0 {
		term := queue[0]
		queue = queue[1:]
		rels, err := store.Relationships(term, nil)
		if err != nil {
			return nil, err
		}
		for _, r := range rels {
			res = append(res, r)
			if !visited[r.Object.ID()] {
				visited[r.Object.ID()] = true
				queue = append(queue, r.Object)
			}
		}
	}
	return res, nil
}

// writeDot writes rels as a Graphviz digraph with the more general terms at
// the top. It ignores write errors.
func writeDot(w io.Writer, rels []ontology.Relationship) {
	fmt.Fprintln(w, "digraph ontology {")
	fmt.Fprintln(w, "\trankdir=BT;")
	fmt.Fprintln(w, "\tnode [shape=box];")
	seen := make(map[string]bool)
	node := func(t *ontology.Term) {
		if seen[t.ID()] {
			return
		}
		seen[t.ID()] = true
		fmt.Fprintf(w, "\t%q [label=%q];\n", t.ID(), t.ID()+"\n"+t.Name())
	}
	for _, r := range rels {
		node(r.Subject)
		node(r.Object)
	}
	for _, r := range rels {
		fmt.Fprintf(w, "\t%q -> %q [label=%q, color=%s];\n",
			r.Subject.ID(), r.Object.ID(), r.Type.String(), edgeColors[r.Type])
	}
	fmt.Fprintln(w, "}")
}
