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

package storetest

import (
	"testing"

	"github.com/ntamas/biopython/ontology"
)

// MiniTerms are the terms of a small ontology for inference tests. It covers
// a slice of the biological process and cellular component branches of GO.
var MiniTerms = []TermSpec{
	{ID: "GO:0008150", Name: "biological_process", Aliases: []string{"GO:0000004"}},
	{ID: "GO:0008152", Name: "metabolic process"},
	{ID: "GO:0009058", Name: "biosynthetic process"},
	{ID: "GO:0010467", Name: "gene expression"},
	{ID: "GO:0006350", Name: "transcription"},
	{ID: "GO:0040007", Name: "growth"},
	{ID: "GO:0050789", Name: "regulation of biological process"},
	{ID: "GO:0048519", Name: "negative regulation of biological process"},
	{ID: "GO:0040008", Name: "regulation of growth"},
	{ID: "GO:0045926", Name: "negative regulation of growth"},
	{ID: "GO:0005575", Name: "cellular_component"},
	{ID: "GO:0005622", Name: "intracellular"},
	{ID: "GO:0005737", Name: "cytoplasm"},
	{ID: "GO:0043226", Name: "organelle"},
	{ID: "GO:0005773", Name: "vacuole"},
	{ID: "GO:0005764", Name: "lysosome"},
}

// MiniRelationships are the relationships between MiniTerms.
var MiniRelationships = []RelSpec{
	{Subject: "GO:0008152", Object: "GO:0008150", Type: ontology.IsA},
	{Subject: "GO:0009058", Object: "GO:0008152", Type: ontology.IsA},
	{Subject: "GO:0010467", Object: "GO:0008152", Type: ontology.IsA},
	{Subject: "GO:0006350", Object: "GO:0009058", Type: ontology.IsA},
	{Subject: "GO:0006350", Object: "GO:0010467", Type: ontology.PartOf},
	{Subject: "GO:0040007", Object: "GO:0008150", Type: ontology.IsA},
	{Subject: "GO:0050789", Object: "GO:0008150", Type: ontology.Regulates},
	{Subject: "GO:0048519", Object: "GO:0050789", Type: ontology.IsA},
	{Subject: "GO:0048519", Object: "GO:0008150", Type: ontology.NegativelyRegulates},
	{Subject: "GO:0040008", Object: "GO:0050789", Type: ontology.IsA},
	{Subject: "GO:0040008", Object: "GO:0040007", Type: ontology.Regulates},
	{Subject: "GO:0045926", Object: "GO:0040008", Type: ontology.IsA},
	{Subject: "GO:0045926", Object: "GO:0040007", Type: ontology.NegativelyRegulates},
	{Subject: "GO:0005622", Object: "GO:0005575", Type: ontology.IsA},
	{Subject: "GO:0005737", Object: "GO:0005575", Type: ontology.IsA},
	{Subject: "GO:0005737", Object: "GO:0005622", Type: ontology.PartOf},
	{Subject: "GO:0043226", Object: "GO:0005575", Type: ontology.IsA},
	{Subject: "GO:0005773", Object: "GO:0043226", Type: ontology.IsA},
	{Subject: "GO:0005773", Object: "GO:0005737", Type: ontology.PartOf},
	{Subject: "GO:0005764", Object: "GO:0005773", Type: ontology.IsA},
}

// InferenceCase is a relationship that should, or should not, be provable
// from MiniRelationships with the default rules.
type InferenceCase struct {
	Name     string
	Subject  string
	Relation ontology.RelType
	Object   string
	Holds    bool
}

// MiniInferences are the inference cases over the mini ontology.
var MiniInferences = []InferenceCase{
	{"cytoplasm is_a cellular_component", "GO:0005737", ontology.IsA, "GO:0005575", true},
	{"transcription is_a metabolic process", "GO:0006350", ontology.IsA, "GO:0008152", true},
	{"transcription is_a biological_process by alias", "GO:0006350", ontology.IsA, "GO:0000004", true},
	{"transcription part_of metabolic process", "GO:0006350", ontology.PartOf, "GO:0008152", true},
	{"transcription part_of biological_process by alias", "GO:0006350", ontology.PartOf, "GO:0000004", true},
	{"lysosome part_of intracellular", "GO:0005764", ontology.PartOf, "GO:0005622", true},
	{"regulation of biological process regulates biological_process", "GO:0050789", ontology.Regulates, "GO:0008150", true},
	{"negative regulation of growth regulates growth", "GO:0045926", ontology.Regulates, "GO:0040007", true},
	{"negative regulation of growth negatively_regulates biological_process", "GO:0045926", ontology.NegativelyRegulates, "GO:0008150", true},
	{"lysosome part_of vacuole", "GO:0005764", ontology.PartOf, "GO:0005773", false},
	{"transcription is_a gene expression", "GO:0006350", ontology.IsA, "GO:0010467", false},
	{"regulation of growth positively_regulates growth", "GO:0040008", ontology.PositivelyRegulates, "GO:0040007", false},
	{"growth part_of biological_process", "GO:0040007", ontology.PartOf, "GO:0008150", false},
}

// LoadMini adds MiniTerms and MiniRelationships to a mutable Store.
func LoadMini(t *testing.T, s ontology.Store) {
	load(t, s, MiniTerms, MiniRelationships)
}
