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

// Package rules implements the composition rules used to infer relationships
// between Gene Ontology terms.
//
// A rule "r1 ∘ r2 → r3" states that from "A r1 B" and "B r2 C" one may infer
// "A r3 C". The rules of a rule set are ordered, and the first rule matching a
// pair of relationships decides what is inferred from them.
package rules

import (
	"fmt"
	"strings"

	"github.com/ntamas/biopython/ontology"
)

type templateKind uint8

const (
	fixedKind templateKind = iota
	copyFirstKind
	copySecondKind
)

// Template describes the type of the relationship a rule infers: either a
// fixed type, or a copy of the type of one of the two composed relationships.
// The zero value is not a valid Template.
type Template struct {
	kind templateKind
	typ  ontology.RelType
}

var (
	// CopyFirst infers a relationship with the type of the first operand.
	CopyFirst = Template{kind: copyFirstKind}
	// CopySecond infers a relationship with the type of the second operand.
	CopySecond = Template{kind: copySecondKind}
)

// Fixed returns a Template that always infers relationships of type t. t
// should not be abstract.
func Fixed(t ontology.RelType) Template {
	return Template{kind: fixedKind, typ: t}
}

// FixedType returns the type of a Fixed template. The second return value is
// false for CopyFirst and CopySecond.
func (t Template) FixedType() (ontology.RelType, bool) {
	return t.typ, t.kind == fixedKind
}

// Resolve returns the type inferred from relationships of types first and
// second.
func (t Template) Resolve(first, second ontology.RelType) ontology.RelType {
	switch t.kind {
	case copyFirstKind:
		return first
	case copySecondKind:
		return second
	default:
		return t.typ
	}
}

func (t Template) String() string {
	switch t.kind {
	case copyFirstKind:
		return "copy_first"
	case copySecondKind:
		return "copy_second"
	default:
		return t.typ.String()
	}
}

// ParseTemplate parses a rule result: "copy_first" (or "1"), "copy_second"
// (or "2"), or the name of a relationship type that can be stored.
func ParseTemplate(s string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy_first", "1":
		return CopyFirst, nil
	case "copy_second", "2":
		return CopySecond, nil
	}
	typ, err := ontology.ParseRelType(s)
	if err != nil {
		return Template{}, err
	}
	if err := ontology.CheckStorable(typ); err != nil {
		return Template{}, err
	}
	return Fixed(typ), nil
}

// Rule is a single composition rule: First ∘ Second → Result.
type Rule struct {
	First  ontology.RelType
	Second ontology.RelType
	Result Template
}

// Parse builds a rule from the names of its operand types and its result, as
// accepted by ParseTemplate.
func Parse(first, second, result string) (Rule, error) {
	r1, err := ontology.ParseRelType(first)
	if err != nil {
		return Rule{}, err
	}
	r2, err := ontology.ParseRelType(second)
	if err != nil {
		return Rule{}, err
	}
	r3, err := ParseTemplate(result)
	if err != nil {
		return Rule{}, err
	}
	return Rule{First: r1, Second: r2, Result: r3}, nil
}

// Matches returns true if the rule applies to a relationship of type first
// followed by one of type second.
func (r Rule) Matches(first, second ontology.RelType) bool {
	return first.IsSubtypeOf(r.First) && second.IsSubtypeOf(r.Second)
}

func (r Rule) String() string {
	return fmt.Sprintf("%v ∘ %v → %v", r.First, r.Second, r.Result)
}

// Rules is an ordered, immutable rule set.
type Rules struct {
	rules []Rule
}

// New returns a rule set with the given rules, in the given order.
func New(rules ...Rule) *Rules {
	return &Rules{rules: append([]Rule(nil), rules...)}
}

// Default returns the standard Gene Ontology rule set:
//
//	regulates ∘ is_a        → copy_first
//	regulates ∘ part_of     → regulates
//	part_of   ∘ inheritable → part_of
//	is_a      ∘ any         → copy_second
//
// The second rule is an approximation: a regulator of a part isn't
// necessarily a regulator of the whole.
func Default() *Rules {
	return New(
		Rule{First: ontology.Regulates, Second: ontology.IsA, Result: CopyFirst},
		Rule{First: ontology.Regulates, Second: ontology.PartOf, Result: Fixed(ontology.Regulates)},
		Rule{First: ontology.PartOf, Second: ontology.Inheritable, Result: Fixed(ontology.PartOf)},
		Rule{First: ontology.IsA, Second: ontology.Any, Result: CopySecond},
	)
}

// Rules returns a copy of the rules, in order.
func (rs *Rules) Rules() []Rule {
	return append([]Rule(nil), rs.rules...)
}

// Len returns the number of rules.
func (rs *Rules) Len() int {
	return len(rs.rules)
}

// Compose returns the type inferred from a relationship of type first followed
// by one of type second, according to the first matching rule. The second
// return value is false if no rule matches.
func (rs *Rules) Compose(first, second ontology.RelType) (ontology.RelType, bool) {
	for _, r := range rs.rules {
		if r.Matches(first, second) {
			return r.Result.Resolve(first, second), true
		}
	}
	return ontology.NoRelType, false
}

// Apply infers a relationship from rel1 followed by rel2. Nothing is inferred
// if rel1's object isn't rel2's subject or if no rule matches.
func (rs *Rules) Apply(rel1, rel2 ontology.Relationship) (ontology.Relationship, bool) {
	if !rel1.Object.Equal(rel2.Subject) {
		return ontology.Relationship{}, false
	}
	typ, ok := rs.Compose(rel1.Type, rel2.Type)
	if !ok {
		return ontology.Relationship{}, false
	}
	return ontology.Relationship{Subject: rel1.Subject, Object: rel2.Object, Type: typ}, true
}

// RestrictTo returns the rules that can take part in inferring a relationship
// whose type is target or a subtype of it, and the relationship types that such
// an inference can start from.
//
// The returned types are concrete and none is a subtype of another. An edge
// whose type is not a subtype of one of them never contributes to an answer.
// The returned rules keep their relative order.
func (rs *Rules) RestrictTo(target ontology.RelType) (*Rules, []ontology.RelType) {
	// constraints holds the types the relationships used to infer target must
	// be subtypes of.
	constraints := typeSet(0).with(target)
	included := make([]bool, len(rs.rules))
	for changed := true; changed; {
		changed = false
		for i, r := range rs.rules {
			for _, n := range constraints.members() {
				first, second, ok := r.operandsFor(n)
				if !ok {
					continue
				}
				included[i] = true
				next := constraints.with(first).with(second)
				if next != constraints {
					constraints = next
					changed = true
				}
			}
		}
	}
	var relevant []Rule
	for i, r := range rs.rules {
		if included[i] {
			relevant = append(relevant, r)
		}
	}
	return &Rules{rules: relevant}, concreteCover(constraints)
}

// operandsFor returns what the types of the two operands must be subtypes of
// for the rule to infer a relationship whose type is a subtype of n. ok is
// false if the rule can't infer such a relationship at all.
func (r Rule) operandsFor(n ontology.RelType) (first, second ontology.RelType, ok bool) {
	switch r.Result.kind {
	case copyFirstKind:
		first, ok = meet(r.First, n)
		return first, r.Second, ok
	case copySecondKind:
		second, ok = meet(r.Second, n)
		return r.First, second, ok
	default:
		return r.First, r.Second, r.Result.typ.IsSubtypeOf(n)
	}
}

// meet returns the more specific of a and b. The relationship types form a
// tree, so two types have common subtypes only if one is a subtype of the
// other.
func meet(a, b ontology.RelType) (ontology.RelType, bool) {
	switch {
	case a.IsSubtypeOf(b):
		return a, true
	case b.IsSubtypeOf(a):
		return b, true
	default:
		return ontology.NoRelType, false
	}
}

// concreteCover returns the concrete types whose subtypes are exactly the
// concrete subtypes of the members of s, with no type a subtype of another.
func concreteCover(s typeSet) []ontology.RelType {
	var concrete typeSet
	var expand func(t ontology.RelType)
	expand = func(t ontology.RelType) {
		if !t.Abstract() {
			concrete = concrete.with(t)
			return
		}
		for _, c := range t.Children() {
			expand(c)
		}
	}
	for _, t := range s.members() {
		expand(t)
	}
	var res []ontology.RelType
	for _, t := range concrete.members() {
		covered := false
		for _, other := range concrete.members() {
			if other != t && t.IsSubtypeOf(other) {
				covered = true
				break
			}
		}
		if !covered {
			res = append(res, t)
		}
	}
	return res
}

// typeSet is a set of relationship types, one bit per type.
type typeSet uint32

func (s typeSet) with(t ontology.RelType) typeSet {
	return s | 1<<uint(t)
}

func (s typeSet) has(t ontology.RelType) bool {
	return s&(1<<uint(t)) != 0
}

// members returns the types in s, in increasing order.
func (s typeSet) members() []ontology.RelType {
	var res []ontology.RelType
	for _, t := range ontology.RelTypes() {
		if s.has(t) {
			res = append(res, t)
		}
	}
	return res
}
