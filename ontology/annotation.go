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
	"bufio"
	"fmt"
	"io"
	"strings"
)

// EvidenceCode classifies the support cited for an annotation. The zero value
// NoEvidenceCode is not a valid code.
type EvidenceCode uint8

// The GO evidence codes.
const (
	NoEvidenceCode EvidenceCode = iota
	EvidenceEXP
	EvidenceIDA
	EvidenceIPI
	EvidenceIMP
	EvidenceIGI
	EvidenceIEP
	EvidenceISS
	EvidenceISO
	EvidenceISA
	EvidenceISM
	EvidenceIGC
	EvidenceRCA
	EvidenceTAS
	EvidenceNAS
	EvidenceIC
	EvidenceND
	EvidenceIEA
	EvidenceNR
	numEvidenceCodes
)

var evidenceCodes = [numEvidenceCodes]struct{ name, description string }{
	NoEvidenceCode: {"<none>", ""},
	EvidenceEXP:    {"EXP", "Inferred from experiment"},
	EvidenceIDA:    {"IDA", "Inferred from direct assay"},
	EvidenceIPI:    {"IPI", "Inferred from physical interaction"},
	EvidenceIMP:    {"IMP", "Inferred from mutant phenotype"},
	EvidenceIGI:    {"IGI", "Inferred from genetic interaction"},
	EvidenceIEP:    {"IEP", "Inferred from expression pattern"},
	EvidenceISS:    {"ISS", "Inferred from sequence or structural similarity"},
	EvidenceISO:    {"ISO", "Inferred from sequence orthology"},
	EvidenceISA:    {"ISA", "Inferred from sequence alignment"},
	EvidenceISM:    {"ISM", "Inferred from sequence model"},
	EvidenceIGC:    {"IGC", "Inferred from genomic context"},
	EvidenceRCA:    {"RCA", "Inferred from reviewed computational analysis"},
	EvidenceTAS:    {"TAS", "Traceable author statement"},
	EvidenceNAS:    {"NAS", "Non-traceable author statement"},
	EvidenceIC:     {"IC", "Inferred by curator"},
	EvidenceND:     {"ND", "No biological data available"},
	EvidenceIEA:    {"IEA", "Inferred from electronic annotation"},
	EvidenceNR:     {"NR", "Not recorded"},
}

// ParseEvidenceCode returns the evidence code with the given abbreviation,
// such as "IDA". Case is ignored.
func ParseEvidenceCode(name string) (EvidenceCode, error) {
	for c := EvidenceEXP; c < numEvidenceCodes; c++ {
		if strings.EqualFold(name, evidenceCodes[c].name) {
			return c, nil
		}
	}
	return NoEvidenceCode, fmt.Errorf("%w: %q", ErrUnknownEvidenceCode, name)
}

// Valid returns true if c is one of the GO evidence codes.
func (c EvidenceCode) Valid() bool {
	return c > NoEvidenceCode && c < numEvidenceCodes
}

// String returns the abbreviation of c.
func (c EvidenceCode) String() string {
	if c >= numEvidenceCodes {
		return fmt.Sprintf("EvidenceCode(%d)", uint8(c))
	}
	return evidenceCodes[c].name
}

// Description returns the long form of c, such as "Inferred from direct
// assay".
func (c EvidenceCode) Description() string {
	if !c.Valid() {
		return ""
	}
	return evidenceCodes[c].description
}

// Namespace is one of the three sub-ontologies of GO. It appears as the aspect
// of annotations and as the namespace of terms.
type Namespace uint8

// The GO namespaces. The zero value NoNamespace is not a valid namespace.
const (
	NoNamespace Namespace = iota
	BiologicalProcess
	MolecularFunction
	CellularComponent
	numNamespaces
)

var namespaces = [numNamespaces]struct{ letter, name, description string }{
	NoNamespace:       {"<none>", "", ""},
	BiologicalProcess: {"P", "biological_process", "Biological process"},
	MolecularFunction: {"F", "molecular_function", "Molecular function"},
	CellularComponent: {"C", "cellular_component", "Cellular component"},
}

// ParseNamespace accepts the aspect letter of a namespace ("P", "F" or "C"),
// its OBO name such as "biological_process", or its description such as
// "Biological process". Case is ignored.
func ParseNamespace(s string) (Namespace, error) {
	for ns := BiologicalProcess; ns < numNamespaces; ns++ {
		info := namespaces[ns]
		if strings.EqualFold(s, info.letter) || strings.EqualFold(s, info.name) ||
			strings.EqualFold(s, info.description) {
			return ns, nil
		}
	}
	return NoNamespace, fmt.Errorf("%w: %q", ErrUnknownNamespace, s)
}

// TermNamespace returns the namespace recorded in the "namespace" tag of t.
// It returns NoNamespace and a nil error if t has no such tag.
func TermNamespace(t *Term) (Namespace, error) {
	tag := t.Tag("namespace")
	if len(tag) == 0 {
		return NoNamespace, nil
	}
	return ParseNamespace(tag[0])
}

// Valid returns true if ns is one of the three GO namespaces.
func (ns Namespace) Valid() bool {
	return ns > NoNamespace && ns < numNamespaces
}

// String returns the aspect letter of ns.
func (ns Namespace) String() string {
	if ns >= numNamespaces {
		return fmt.Sprintf("Namespace(%d)", uint8(ns))
	}
	return namespaces[ns].letter
}

// Name returns the OBO name of ns, such as "cellular_component".
func (ns Namespace) Name() string {
	if !ns.Valid() {
		return ""
	}
	return namespaces[ns].name
}

// Description returns the long form of ns, such as "Cellular component".
func (ns Namespace) Description() string {
	if !ns.Valid() {
		return ""
	}
	return namespaces[ns].description
}

// NumAnnotationFields is the number of columns in a GAF 2.0 annotation line.
// GAF 1.0 lines have the first 15 of them.
const NumAnnotationFields = 17

// Annotation is an entry of a GO annotation file (GAF), associating a gene
// product with a GO term. Fields that may hold several values are split on
// "|".
type Annotation struct {
	DB             string
	DBObjectID     string
	DBObjectSymbol string
	// Qualifiers modify the meaning of the annotation: NOT, contributes_to,
	// colocalizes_with.
	Qualifiers []string
	GOID       string
	// DBReferences cite the single source of the annotation, as DB:accession.
	DBReferences []string
	// EvidenceCode defaults to EvidenceND.
	EvidenceCode EvidenceCode
	// From lists DB:accession or GO IDs backing some evidence codes.
	From []string
	// Aspect is NoNamespace if the column was empty.
	Aspect               Namespace
	DBObjectName         string
	DBObjectSynonyms     []string
	DBObjectType         string
	Taxons               []string
	Date                 string // YYYYMMDD
	AssignedBy           string
	AnnotationExtensions []string
	GeneProductFormID    string
}

// NewAnnotation builds an annotation from the columns of a GAF line, in file
// order. Missing trailing columns are left empty. A non-empty GO ID is
// normalized.
func NewAnnotation(fields ...string) (*Annotation, error) {
	if len(fields) > NumAnnotationFields {
		return nil, fmt.Errorf("annotation has %d fields, expected at most %d",
			len(fields), NumAnnotationFields)
	}
	var f [NumAnnotationFields]string
	copy(f[:], fields)
	a := &Annotation{
		DB:                   f[0],
		DBObjectID:           f[1],
		DBObjectSymbol:       f[2],
		Qualifiers:           splitPipes(f[3]),
		GOID:                 f[4],
		DBReferences:         splitPipes(f[5]),
		From:                 splitPipes(f[7]),
		DBObjectName:         f[9],
		DBObjectSynonyms:     splitPipes(f[10]),
		DBObjectType:         f[11],
		Taxons:               splitPipes(f[12]),
		Date:                 f[13],
		AssignedBy:           f[14],
		AnnotationExtensions: splitPipes(f[15]),
		GeneProductFormID:    f[16],
		EvidenceCode:         EvidenceND,
	}
	var err error
	if a.GOID != "" {
		if a.GOID, err = NormalizeID(a.GOID); err != nil {
			return nil, err
		}
	}
	if f[6] != "" {
		if a.EvidenceCode, err = ParseEvidenceCode(f[6]); err != nil {
			return nil, err
		}
	}
	if f[8] != "" {
		if a.Aspect, err = ParseNamespace(f[8]); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func splitPipes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// Negated returns true if a states that the gene product is NOT associated
// with the term.
func (a *Annotation) Negated() bool {
	for _, q := range a.Qualifiers {
		if strings.EqualFold(q, "NOT") {
			return true
		}
	}
	return false
}

// WithTerm returns a copy of a annotating t instead of a's term. The aspect is
// taken from t's namespace tag when it has one.
func (a *Annotation) WithTerm(t *Term) *Annotation {
	res := *a
	res.GOID = t.ID()
	if ns, err := TermNamespace(t); err == nil && ns.Valid() {
		res.Aspect = ns
	}
	return &res
}

// ReadAnnotations parses the GAF lines of r and calls fn for each annotation.
// Blank lines and lines starting with "!" are skipped. If fn returns ErrHalt,
// ReadAnnotations stops and returns nil.
func ReadAnnotations(r io.Reader, fn func(*Annotation) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		a, err := NewAnnotation(strings.Split(line, "\t")...)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := fn(a); err != nil {
			if err == ErrHalt {
				return nil
			}
			return err
		}
	}
	return scanner.Err()
}
