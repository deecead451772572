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
	"os"

	"github.com/ntamas/biopython/infer"
	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/util/table"
)

// propagate reads the GAF file and prints its annotations along with the
// ones implied by the ontology.
func propagate(ctx context.Context, out io.Writer, engine *infer.Engine, store ontology.Store, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return propagateAnnotations(ctx, out, engine, store, f)
}

func propagateAnnotations(ctx context.Context, out io.Writer, engine *infer.Engine, store ontology.Store, in io.Reader) error {
	t := [][]string{
		{"Object", "Symbol", "Term", "Name", "Aspect", "Evidence"},
	}
	read := 0
	err := ontology.ReadAnnotations(in, func(a *ontology.Annotation) error {
		read++
		res, err := engine.Propagate(ctx, store, a)
		if err != nil {
			return err
		}
		for _, p := range res {
			term, err := store.TermByID(p.GOID)
			if err != nil {
				return err
			}
			aspect := ""
			if p.Aspect.Valid() {
				aspect = p.Aspect.String()
			}
			t = append(t, []string{
				p.DB + ":" + p.DBObjectID, p.DBObjectSymbol,
				term.ID(), term.Name(), aspect, p.EvidenceCode.String(),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	table.PrettyPrint(out, t, table.HeaderRow|table.SkipEmpty)
	fmtr.Fprintf(out, "Propagated %d annotations to %d\n", read, len(t)-1)
	return nil
}
