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

package ontology

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseEvidenceCode(t *testing.T) {
	c, err := ParseEvidenceCode("IDA")
	require.NoError(t, err)
	assert.Equal(t, EvidenceIDA, c)
	assert.Equal(t, "IDA", c.String())
	assert.Equal(t, "Inferred from direct assay", c.Description())

	c, err = ParseEvidenceCode("iea")
	require.NoError(t, err)
	assert.Equal(t, EvidenceIEA, c)

	for c := EvidenceEXP; c <= EvidenceNR; c++ {
		parsed, err := ParseEvidenceCode(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.NotEmpty(t, c.Description())
	}

	_, err = ParseEvidenceCode("XYZ")
	assert.ErrorIs(t, err, ErrUnknownEvidenceCode)
	_, err = ParseEvidenceCode("")
	assert.ErrorIs(t, err, ErrUnknownEvidenceCode)
	assert.False(t, NoEvidenceCode.Valid())
	assert.Equal(t, "", NoEvidenceCode.Description())
}

func Test_ParseNamespace(t *testing.T) {
	tests := []struct {
		input string
		exp   Namespace
	}{
		{"P", BiologicalProcess},
		{"f", MolecularFunction},
		{"C", CellularComponent},
		{"biological_process", BiologicalProcess},
		{"molecular_function", MolecularFunction},
		{"Cellular component", CellularComponent},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			ns, err := ParseNamespace(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.exp, ns)
		})
	}
	_, err := ParseNamespace("X")
	assert.ErrorIs(t, err, ErrUnknownNamespace)

	assert.Equal(t, "C", CellularComponent.String())
	assert.Equal(t, "cellular_component", CellularComponent.Name())
	assert.Equal(t, "Cellular component", CellularComponent.Description())
	assert.False(t, NoNamespace.Valid())
	assert.Equal(t, "", NoNamespace.Name())
}

func Test_TermNamespace(t *testing.T) {
	term := MustNewTerm("GO:0005764", "lysosome")
	ns, err := TermNamespace(term)
	require.NoError(t, err)
	assert.Equal(t, NoNamespace, ns)

	require.NoError(t, term.AddTag("namespace", "cellular_component"))
	ns, err = TermNamespace(term)
	require.NoError(t, err)
	assert.Equal(t, CellularComponent, ns)

	odd := MustNewTerm("GO:0000001", "odd")
	require.NoError(t, odd.AddTag("namespace", "external"))
	_, err = TermNamespace(odd)
	assert.ErrorIs(t, err, ErrUnknownNamespace)
}

func Test_NewAnnotation(t *testing.T) {
	a, err := NewAnnotation("UniProtKB", "P12345", "ABC1", "NOT|contributes_to",
		"0005764", "PMID:1234|GO_REF:0000002", "IDA", "", "C", "ATP-binding cassette",
		"ABC1A|abcA", "protein", "taxon:9606", "20100101", "UniProt",
		"part_of(CL:0000084)", "UniProtKB:P12345-2")
	require.NoError(t, err)
	assert.Equal(t, &Annotation{
		DB:                   "UniProtKB",
		DBObjectID:           "P12345",
		DBObjectSymbol:       "ABC1",
		Qualifiers:           []string{"NOT", "contributes_to"},
		GOID:                 "GO:0005764",
		DBReferences:         []string{"PMID:1234", "GO_REF:0000002"},
		EvidenceCode:         EvidenceIDA,
		Aspect:               CellularComponent,
		DBObjectName:         "ATP-binding cassette",
		DBObjectSynonyms:     []string{"ABC1A", "abcA"},
		DBObjectType:         "protein",
		Taxons:               []string{"taxon:9606"},
		Date:                 "20100101",
		AssignedBy:           "UniProt",
		AnnotationExtensions: []string{"part_of(CL:0000084)"},
		GeneProductFormID:    "UniProtKB:P12345-2",
	}, a)
	assert.True(t, a.Negated())
}

func Test_NewAnnotationDefaults(t *testing.T) {
	a, err := NewAnnotation("SGD", "S000000001", "YAL001C", "", "GO:0006350")
	require.NoError(t, err)
	assert.Equal(t, EvidenceND, a.EvidenceCode)
	assert.Equal(t, NoNamespace, a.Aspect)
	assert.Nil(t, a.Qualifiers)
	assert.Nil(t, a.Taxons)
	assert.False(t, a.Negated())

	a, err = NewAnnotation()
	require.NoError(t, err)
	assert.Equal(t, "", a.GOID)
	assert.Equal(t, EvidenceND, a.EvidenceCode)
}

func Test_NewAnnotationErrors(t *testing.T) {
	_, err := NewAnnotation(make([]string, NumAnnotationFields+1)...)
	assert.EqualError(t, err, "annotation has 18 fields, expected at most 17")
	_, err = NewAnnotation("SGD", "S1", "X", "", "GO:12")
	assert.ErrorIs(t, err, ErrFormat)
	_, err = NewAnnotation("SGD", "S1", "X", "", "GO:0006350", "", "XYZ")
	assert.ErrorIs(t, err, ErrUnknownEvidenceCode)
	_, err = NewAnnotation("SGD", "S1", "X", "", "GO:0006350", "", "IDA", "", "Q")
	assert.ErrorIs(t, err, ErrUnknownNamespace)
}

func Test_AnnotationWithTerm(t *testing.T) {
	a, err := NewAnnotation("SGD", "S1", "X", "", "GO:0005764", "", "IDA", "", "C")
	require.NoError(t, err)
	vacuole := MustNewTerm("GO:0005773", "vacuole")
	b := a.WithTerm(vacuole)
	assert.Equal(t, "GO:0005773", b.GOID)
	assert.Equal(t, CellularComponent, b.Aspect)
	assert.Equal(t, "GO:0005764", a.GOID)

	process := MustNewTerm("GO:0008150", "biological_process")
	require.NoError(t, process.AddTag("namespace", "biological_process"))
	assert.Equal(t, BiologicalProcess, a.WithTerm(process).Aspect)
}

const gaf = `!gaf-version: 2.0
!
SGD	S000000001	YAL001C		GO:0006350	PMID:1	IDA		P

SGD	S000000002	YAL002W	NOT	GO:0005764	PMID:2	IEA		C
`

func Test_ReadAnnotations(t *testing.T) {
	var got []*Annotation
	err := ReadAnnotations(strings.NewReader(gaf), func(a *Annotation) error {
		got = append(got, a)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "GO:0006350", got[0].GOID)
	assert.Equal(t, BiologicalProcess, got[0].Aspect)
	assert.Equal(t, EvidenceIEA, got[1].EvidenceCode)
	assert.True(t, got[1].Negated())

	n := 0
	err = ReadAnnotations(strings.NewReader(gaf), func(a *Annotation) error {
		n++
		return ErrHalt
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	boom := errors.New("boom")
	err = ReadAnnotations(strings.NewReader(gaf), func(a *Annotation) error {
		return boom
	})
	assert.Equal(t, boom, err)

	err = ReadAnnotations(strings.NewReader("SGD\tS1\tX\t\tGO:12\n"), func(*Annotation) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "line 1: ")
}
