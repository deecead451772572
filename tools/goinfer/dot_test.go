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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ntamas/biopython/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_graphEdges(t *testing.T) {
	s := miniStore(t)
	rels, err := graphEdges(s, "GO:0005764")
	require.NoError(t, err)
	var edges []string
	for _, r := range rels {
		edges = append(edges, r.String())
	}
	assert.ElementsMatch(t, []string{
		"GO:0005764 is_a GO:0005773",
		"GO:0005773 is_a GO:0043226",
		"GO:0005773 part_of GO:0005737",
		"GO:0043226 is_a GO:0005575",
		"GO:0005737 is_a GO:0005575",
		"GO:0005737 part_of GO:0005622",
		"GO:0005622 is_a GO:0005575",
	}, edges)

	all, err := graphEdges(s, "")
	require.NoError(t, err)
	assert.Len(t, all, 20)

	_, err = graphEdges(s, "GO:1234567")
	assert.ErrorIs(t, err, ontology.ErrNoSuchTerm)
}

func Test_writeDot(t *testing.T) {
	lysosome := ontology.MustNewTerm("GO:0005764", "lysosome")
	vacuole := ontology.MustNewTerm("GO:0005773", "vacuole")
	cytoplasm := ontology.MustNewTerm("GO:0005737", "cytoplasm")
	var out strings.Builder
	writeDot(&out, []ontology.Relationship{
		{Subject: lysosome, Object: vacuole, Type: ontology.IsA},
		{Subject: vacuole, Object: cytoplasm, Type: ontology.PartOf},
	})
	assert.Equal(t, `digraph ontology {
	rankdir=BT;
	node [shape=box];
	"GO:0005764" [label="GO:0005764\nlysosome"];
	"GO:0005773" [label="GO:0005773\nvacuole"];
	"GO:0005737" [label="GO:0005737\ncytoplasm"];
	"GO:0005764" -> "GO:0005773" [label="is_a", color=black];
	"GO:0005773" -> "GO:0005737" [label="part_of", color=blue];
}
`, out.String())
}

func Test_drawGraph(t *testing.T) {
	s := miniStore(t)
	filename := filepath.Join(t.TempDir(), "lysosome.dot")
	require.NoError(t, drawGraph(s, &options{Term: "GO:0005764", Filename: filename}))
	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, 7, strings.Count(string(contents), " -> "))
	assert.Contains(t, string(contents), `"GO:0005575" [label="GO:0005575\ncellular_component"];`)
}
