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

import "fmt"

// Relationship is a directed, typed edge: Subject Type Object, for example
// "lysosome is_a vacuole". Relationships are values and are never modified
// once created.
type Relationship struct {
	Subject *Term
	Object  *Term
	Type    RelType
}

// Equal returns true if r and other connect the same terms with exactly the
// same type.
func (r Relationship) Equal(other Relationship) bool {
	return r.Type == other.Type && r.Subject.Equal(other.Subject) && r.Object.Equal(other.Object)
}

// Implies returns true if r connects the same terms as other, and r's type is
// the same as or a subtype of other's type. For example
// "A positively_regulates B" implies "A regulates B", but not the other way
// around.
func (r Relationship) Implies(other Relationship) bool {
	return r.Subject.Equal(other.Subject) && r.Object.Equal(other.Object) &&
		r.Type.IsSubtypeOf(other.Type)
}

func (r Relationship) String() string {
	return fmt.Sprintf("%s %v %s", termID(r.Subject), r.Type, termID(r.Object))
}

func termID(t *Term) string {
	if t == nil {
		return "?"
	}
	return t.id
}
