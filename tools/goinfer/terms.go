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
	"io"
	"strings"

	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/util/table"
)

// listTerms prints up to limit terms of the store in its enumeration order,
// or every term if limit is 0.
func listTerms(out io.Writer, store ontology.Store, limit int) error {
	t := [][]string{
		{"ID", "Name", "Aliases"},
	}
	err := store.Terms(func(term *ontology.Term) error {
		if limit > 0 && len(t) > limit {
			return ontology.ErrHalt
		}
		t = append(t, termRow(term))
		return nil
	})
	if err != nil {
		return err
	}
	total, err := store.NumTerms()
	if err != nil {
		return err
	}
	t = append(t, []string{fmtr.Sprintf("%d of %d", len(t)-1, total), "", ""})
	table.PrettyPrint(out, t, table.HeaderRow|table.FooterRow)
	return nil
}

func listOrphans(out io.Writer, store ontology.Store) error {
	orphans, err := store.OrphanedTerms()
	if err != nil {
		return err
	}
	t := [][]string{
		{"ID", "Name", "Aliases"},
	}
	for _, term := range orphans {
		t = append(t, termRow(term))
	}
	table.PrettyPrint(out, t, table.HeaderRow|table.SkipEmpty)
	fmtr.Fprintf(out, "Found %d orphaned terms\n", len(orphans))
	return nil
}

func termRow(term *ontology.Term) []string {
	return []string{term.ID(), term.Name(), strings.Join(term.Aliases(), "\n")}
}
