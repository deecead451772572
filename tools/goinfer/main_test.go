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
	"strings"
	"testing"

	"github.com/ntamas/biopython/config"
	"github.com/ntamas/biopython/infer"
	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/ontology/memstore"
	"github.com/ntamas/biopython/ontology/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func miniStore(t *testing.T) *memstore.Store {
	s := memstore.New("mini")
	storetest.LoadMini(t, s)
	return s
}

func Test_parseArgs(t *testing.T) {
	options, err := parseArgs([]string{"query", "GO:0005764", "part_of", "?"})
	require.NoError(t, err)
	assert.True(t, options.Query)
	assert.Equal(t, "goinfer.json", options.ConfigFile)
	assert.Equal(t, "GO:0005764", options.Subject)
	assert.Equal(t, "part_of", options.Relation)
	assert.Equal(t, "?", options.Object)
	assert.False(t, options.Memory)

	options, err = parseArgs([]string{"-c", "go.json", "-v", "terms", "--limit=5"})
	require.NoError(t, err)
	assert.True(t, options.Terms)
	assert.True(t, options.Verbose)
	assert.Equal(t, "go.json", options.ConfigFile)
	assert.Equal(t, 5, options.Limit)

	options, err = parseArgs([]string{"--memory", "dot", "--term", "GO:0005764", "out.svg"})
	require.NoError(t, err)
	assert.True(t, options.Dot)
	assert.True(t, options.Memory)
	assert.Equal(t, "GO:0005764", options.Term)
	assert.Equal(t, "out.svg", options.Filename)

	options, err = parseArgs([]string{"propagate", "gene_association.sgd"})
	require.NoError(t, err)
	assert.True(t, options.Propagate)
	assert.Equal(t, "gene_association.sgd", options.GAFFile)

	_, err = parseArgs([]string{"terms", "--limit=lots"})
	assert.EqualError(t, err, `invalid --limit value: "lots"`)
}

func Test_endpoint(t *testing.T) {
	assert.Nil(t, endpoint("?"))
	assert.Nil(t, endpoint(""))
	assert.Equal(t, "GO:0005764", endpoint("GO:0005764"))
}

func Test_query(t *testing.T) {
	s := miniStore(t)
	engine := infer.New(nil, infer.Options{})
	ctx := context.Background()

	t.Run("object unbound", func(t *testing.T) {
		var out strings.Builder
		err := query(ctx, &out, engine, s, &options{Subject: "GO:0005764", Relation: "part_of", Object: "?"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), " GO:0005764 | part_of  | GO:0005737 | cytoplasm ")
		assert.Contains(t, out.String(), " GO:0005764 | part_of  | GO:0005622 | intracellular ")
		assert.Contains(t, out.String(), " GO:0005764 | part_of  | GO:0005575 | cellular_component ")
		assert.Contains(t, out.String(), "Found 3 relationships")
	})
	t.Run("bound", func(t *testing.T) {
		var out strings.Builder
		err := query(ctx, &out, engine, s, &options{Subject: "GO:0006350", Relation: "is a", Object: "GO:0008152"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(),
			"GO:0006350 is_a GO:0008152 holds: GO:0006350 is_a GO:0008152\n"), out.String())
	})
	t.Run("bound does not hold", func(t *testing.T) {
		var out strings.Builder
		err := query(ctx, &out, engine, s, &options{Subject: "GO:0005764", Relation: "part_of", Object: "GO:0005773"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.String(), "GO:0005764 part_of GO:0005773 does not hold\n"))
	})
	t.Run("unknown term", func(t *testing.T) {
		err := query(ctx, new(strings.Builder), engine, s, &options{Subject: "GO:1234567", Relation: "is_a", Object: "?"})
		assert.ErrorIs(t, err, ontology.ErrNoSuchTerm)
	})
	t.Run("both unbound", func(t *testing.T) {
		err := query(ctx, new(strings.Builder), engine, s, &options{Subject: "?", Relation: "is_a", Object: "?"})
		assert.ErrorIs(t, err, infer.ErrInvalidQuery)
	})
}

func Test_listTerms(t *testing.T) {
	s := memstore.New("fixture")
	storetest.Load(t, s)
	var out strings.Builder
	require.NoError(t, listTerms(&out, s, 2))
	assert.Equal(t, `
 ID         | Name               | Aliases    |
 ---------- | ------------------ | ---------- |
 GO:0003674 | molecular_function | GO:0005554 |
 GO:0008150 | biological_process |            |
 ---------- | ------------------ | ---------- |
 2 of 4     |                    |            |
`, "\n"+out.String())
}

func Test_listOrphans(t *testing.T) {
	s := memstore.New("fixture")
	storetest.Load(t, s)
	var out strings.Builder
	require.NoError(t, listOrphans(&out, s))
	assert.Equal(t, `
 ID         | Name               | Aliases    |
 ---------- | ------------------ | ---------- |
 GO:0003674 | molecular_function | GO:0005554 |
Found 1 orphaned terms
`, "\n"+out.String())
}

func Test_printRules(t *testing.T) {
	cfg := &config.Config{Database: &config.Database{Driver: "sqlite"}}
	var out strings.Builder
	require.NoError(t, printRules(&out, cfg, ""))
	assert.Equal(t, `
 # | First     | Second      | Result      |
 - | --------- | ----------- | ----------- |
 1 | regulates | is_a        | copy_first  |
 2 | regulates | part_of     | regulates   |
 3 | part_of   | inheritable | part_of     |
 4 | is_a      | any         | copy_second |
`, "\n"+out.String())

	out.Reset()
	require.NoError(t, printRules(&out, cfg, "is_a"))
	assert.Equal(t, `
Relationship types leading to is_a: is_a
 # | First | Second | Result      |
 - | ----- | ------ | ----------- |
 1 | is_a  | any    | copy_second |
`, "\n"+out.String())

	assert.ErrorIs(t, printRules(&out, cfg, "has_part"), ontology.ErrUnknownRelation)
}

func Test_propagateAnnotations(t *testing.T) {
	s := miniStore(t)
	engine := infer.New(nil, infer.Options{})
	gaf := "!gaf-version: 2.0\n" +
		"SGD\tS000000001\tVPS1\t\tGO:0005764\tPMID:1\tIDA\t\tC\n" +
		"SGD\tS000000002\tGRO1\tNOT\tGO:0040007\tPMID:2\tIMP\t\tP\n"
	var out strings.Builder
	err := propagateAnnotations(context.Background(), &out, engine, s, strings.NewReader(gaf))
	require.NoError(t, err)
	assert.Contains(t, out.String(), " SGD:S000000001 | VPS1   | GO:0005764 | lysosome ")
	assert.Contains(t, out.String(), " SGD:S000000001 | VPS1   | GO:0005773 | vacuole ")
	assert.Contains(t, out.String(), " SGD:S000000001 | VPS1   | GO:0005575 | cellular_component | C      | IDA      |")
	assert.Contains(t, out.String(), " SGD:S000000002 | GRO1   | GO:0040007 | growth ")
	assert.NotContains(t, out.String(), "GO:0008150")
	assert.Contains(t, out.String(), "Propagated 2 annotations to 7\n")

	err = propagateAnnotations(context.Background(), new(strings.Builder), engine, s,
		strings.NewReader("SGD\tS1\tX\t\tGO:1234567\n"))
	assert.ErrorIs(t, err, ontology.ErrNoSuchTerm)
}
