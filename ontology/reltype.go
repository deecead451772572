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
	"fmt"
	"strings"
)

// RelType identifies the type of a relationship between two terms. The set of
// types is closed and partially ordered: PositivelyRegulates and
// NegativelyRegulates are subtypes of Regulates, IsA and PartOf are subtypes of
// Inheritable, and every type is a subtype of Any.
//
// Inheritable and Any are abstract: they are used as wildcards in inference
// rules and queries, but never appear on stored relationships.
type RelType uint8

// The relationship types. The zero value NoRelType represents the absence of
// a type.
const (
	NoRelType RelType = iota
	Any
	Inheritable
	IsA
	PartOf
	Regulates
	PositivelyRegulates
	NegativelyRegulates
	numRelTypes
)

type relTypeInfo struct {
	// names lists the accepted names, the canonical one first.
	names    []string
	parent   RelType
	abstract bool
}

var relTypes = [numRelTypes]relTypeInfo{
	NoRelType:           {names: []string{"<none>"}},
	Any:                 {names: []string{"any"}, abstract: true},
	Inheritable:         {names: []string{"inheritable"}, parent: Any, abstract: true},
	IsA:                 {names: []string{"is_a"}, parent: Inheritable},
	PartOf:              {names: []string{"part_of"}, parent: Inheritable},
	Regulates:           {names: []string{"regulates"}, parent: Any},
	PositivelyRegulates: {names: []string{"positively_regulates"}, parent: Regulates},
	NegativelyRegulates: {names: []string{"negatively_regulates"}, parent: Regulates},
}

var (
	// ancestors[t] has bit a set iff t is a or a subtype of a.
	ancestors [numRelTypes]uint16
	// children[t] lists the direct subtypes of t.
	children [numRelTypes][]RelType
	// relTypesByName maps normalized names to types.
	relTypesByName = make(map[string]RelType)
)

func init() {
	for t := Any; t < numRelTypes; t++ {
		for a := t; a != NoRelType; a = relTypes[a].parent {
			ancestors[t] |= 1 << a
		}
		if p := relTypes[t].parent; p != NoRelType {
			children[p] = append(children[p], t)
		}
		for _, n := range relTypes[t].names {
			relTypesByName[normalizeRelName(n)] = t
		}
	}
}

// normalizeRelName lowercases a name and treats spaces and underscores alike,
// so that "Is A", "is a" and "is_a" are all the same name.
func normalizeRelName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// ParseRelType returns the relationship type with the given name. Names are
// case-insensitive and spaces may be used in place of underscores. An unknown
// name results in an error wrapping ErrUnknownRelation.
func ParseRelType(name string) (RelType, error) {
	if t, exists := relTypesByName[normalizeRelName(name)]; exists {
		return t, nil
	}
	return NoRelType, fmt.Errorf("%w: %q", ErrUnknownRelation, name)
}

// RelTypes returns every valid relationship type, abstract ones included.
func RelTypes() []RelType {
	res := make([]RelType, 0, numRelTypes-1)
	for t := Any; t < numRelTypes; t++ {
		res = append(res, t)
	}
	return res
}

// Valid returns true if t is one of the declared relationship types.
func (t RelType) Valid() bool {
	return t > NoRelType && t < numRelTypes
}

// Abstract returns true for the wildcard types that can't be stored on a
// relationship.
func (t RelType) Abstract() bool {
	return t.Valid() && relTypes[t].abstract
}

// IsSubtypeOf returns true if t is other or a (transitive) subtype of it.
func (t RelType) IsSubtypeOf(other RelType) bool {
	if !t.Valid() || !other.Valid() {
		return false
	}
	return ancestors[t]&(1<<other) != 0
}

// Parent returns the direct supertype of t, or NoRelType for Any.
func (t RelType) Parent() RelType {
	if !t.Valid() {
		return NoRelType
	}
	return relTypes[t].parent
}

// Children returns the direct subtypes of t.
func (t RelType) Children() []RelType {
	if !t.Valid() {
		return nil
	}
	return append([]RelType(nil), children[t]...)
}

// Names returns the names t can be parsed from, canonical name first.
func (t RelType) Names() []string {
	if !t.Valid() {
		return nil
	}
	return append([]string(nil), relTypes[t].names...)
}

func (t RelType) String() string {
	if t >= numRelTypes {
		return fmt.Sprintf("RelType(%d)", uint8(t))
	}
	return relTypes[t].names[0]
}

// MarshalText implements encoding.TextMarshaler.
func (t RelType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("can't marshal invalid relationship type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RelType) UnmarshalText(text []byte) error {
	parsed, err := ParseRelType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
