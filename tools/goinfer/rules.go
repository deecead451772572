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

	"github.com/ntamas/biopython/config"
	"github.com/ntamas/biopython/ontology"
	"github.com/ntamas/biopython/util/table"
)

// printRules prints the configured rules. If target is set, it prints only
// the rules that can infer target, and the relationship types such an
// inference may start from.
func printRules(out io.Writer, cfg *config.Config, target string) error {
	rs, err := cfg.RuleSet()
	if err != nil {
		return err
	}
	if target != "" {
		typ, err := ontology.ParseRelType(target)
		if err != nil {
			return err
		}
		var reachable []ontology.RelType
		rs, reachable = rs.RestrictTo(typ)
		names := make([]string, len(reachable))
		for i, r := range reachable {
			names[i] = r.String()
		}
		fmtr.Fprintf(out, "Relationship types leading to %v: %s\n", typ, strings.Join(names, ", "))
	}
	t := [][]string{
		{"#", "First", "Second", "Result"},
	}
	for i, r := range rs.Rules() {
		t = append(t, []string{fmtr.Sprintf("%d", i+1), r.First.String(), r.Second.String(), r.Result.String()})
	}
	table.PrettyPrint(out, t, table.HeaderRow)
	return nil
}
