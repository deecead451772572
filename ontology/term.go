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
	"sort"
	"strings"
)

// Term is a single concept in the ontology, identified by a normalized GO ID.
//
// A Term is created standalone and attached to at most one Store at a time by
// the Store's AddTerm. Its aliases and tags may only be edited while it is
// detached; once attached a Term is immutable.
type Term struct {
	id      string
	name    string
	aliases []string
	tags    map[string][]string
	owner   Store
}

// NewTerm returns a new detached term. The id and every alias are normalized
// with NormalizeID.
func NewTerm(id, name string, aliases ...string) (*Term, error) {
	normID, err := NormalizeID(id)
	if err != nil {
		return nil, err
	}
	t := &Term{id: normID, name: name}
	for _, a := range aliases {
		if err := t.AddAlias(a); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustNewTerm is like NewTerm but panics on error.
func MustNewTerm(id, name string, aliases ...string) *Term {
	t, err := NewTerm(id, name, aliases...)
	if err != nil {
		panic(err)
	}
	return t
}

// ID returns the term's normalized GO ID.
func (t *Term) ID() string {
	return t.id
}

// Name returns the human readable name of the term.
func (t *Term) Name() string {
	return t.name
}

// Aliases returns the alternative GO IDs of the term, in the order they were
// added. The returned slice is a copy.
func (t *Term) Aliases() []string {
	if len(t.aliases) == 0 {
		return nil
	}
	return append([]string(nil), t.aliases...)
}

// AddAlias normalizes alias and records it as an alternative ID of the term.
// Adding an alias that is already known, or equal to the primary ID, is a
// no-op.
func (t *Term) AddAlias(alias string) error {
	if t.owner != nil {
		return fmt.Errorf("%w: can't add alias %s to %s", ErrTermAttached, alias, t.id)
	}
	normAlias, err := NormalizeID(alias)
	if err != nil {
		return err
	}
	if normAlias == t.id {
		return nil
	}
	for _, a := range t.aliases {
		if a == normAlias {
			return nil
		}
	}
	t.aliases = append(t.aliases, normAlias)
	return nil
}

// Tags returns a copy of the term's tags. Each tag maps to its values in the
// order they were added; repeated values are kept.
func (t *Term) Tags() map[string][]string {
	res := make(map[string][]string, len(t.tags))
	for k, v := range t.tags {
		res[k] = append([]string(nil), v...)
	}
	return res
}

// Tag returns the values of a single tag, or nil if the tag isn't set.
func (t *Term) Tag(name string) []string {
	v := t.tags[name]
	if len(v) == 0 {
		return nil
	}
	return append([]string(nil), v...)
}

// AddTag appends a value to the named tag.
func (t *Term) AddTag(name, value string) error {
	if t.owner != nil {
		return fmt.Errorf("%w: can't add tag %s to %s", ErrTermAttached, name, t.id)
	}
	if t.tags == nil {
		t.tags = make(map[string][]string)
	}
	t.tags[name] = append(t.tags[name], value)
	return nil
}

// Clone returns a detached copy of the term, with its own aliases and tags.
func (t *Term) Clone() *Term {
	return &Term{
		id:      t.id,
		name:    t.name,
		aliases: t.Aliases(),
		tags:    t.Tags(),
	}
}

// Owner returns the Store the term is attached to, or nil.
func (t *Term) Owner() Store {
	return t.owner
}

// Attach records owner as the Store holding the term. It's intended for use
// by Store implementations only. It fails with ErrTermOwned if the term is
// already attached to a different Store.
func (t *Term) Attach(owner Store) error {
	if t.owner != nil && t.owner != owner {
		return fmt.Errorf("%w: %s", ErrTermOwned, t.id)
	}
	t.owner = owner
	return nil
}

// Detach clears the term's owner. It's intended for use by Store
// implementations only.
func (t *Term) Detach() {
	t.owner = nil
}

// Equal returns true if both terms have the same GO ID. Backends that build
// terms on the fly may return distinct *Term values for the same concept, so
// this is the comparison callers should use.
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.id == other.id
}

func (t *Term) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Term(%s, %q, [%s], {", t.id, t.name, strings.Join(t.aliases, " "))
	names := make([]string, 0, len(t.tags))
	for k := range t.tags {
		names = append(names, k)
	}
	sort.Strings(names)
	for i, k := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %q", k, t.tags[k])
	}
	fmt.Fprintf(&b, "}, attached=%v)", t.owner != nil)
	return b.String()
}
