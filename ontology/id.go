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

// IDPrefix is the prefix of every canonical GO ID.
const IDPrefix = "GO:"

// NumIDDigits is the number of decimal digits in a GO ID, as set by the GO
// Consortium.
const NumIDDigits = 7

// NormalizeID validates a GO ID and returns its canonical "GO:ddddddd" form.
// The "GO:" prefix is optional in the input, so "0006955" and "GO:0006955"
// both normalize to "GO:0006955". NormalizeID is idempotent.
//
// A malformed ID results in a *FormatError.
func NormalizeID(raw string) (string, error) {
	digits := strings.TrimPrefix(raw, IDPrefix)
	if len(digits) != NumIDDigits {
		return "", &FormatError{
			Input:  raw,
			Reason: fmt.Sprintf("GO ID should have precisely %d digits", NumIDDigits),
		}
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", &FormatError{
				Input:  raw,
				Reason: `GO ID should contain only digits, optionally prefixed with "GO:"`,
			}
		}
	}
	return IDPrefix + digits, nil
}

// NormalizeValue is like NormalizeID but accepts an arbitrary value, which is
// useful when IDs come from untyped sources such as decoded JSON. Only strings,
// byte slices and fmt.Stringers are accepted; anything else (including plain
// integers) is a *FormatError.
func NormalizeValue(v interface{}) (string, error) {
	switch id := v.(type) {
	case string:
		return NormalizeID(id)
	case []byte:
		return NormalizeID(string(id))
	case fmt.Stringer:
		return NormalizeID(id.String())
	default:
		return "", &FormatError{Input: v, Reason: "GO ID should be a string"}
	}
}

// MustNormalizeID is like NormalizeID but panics on error. It is meant for
// IDs that are constants in the code.
func MustNormalizeID(raw string) string {
	id, err := NormalizeID(raw)
	if err != nil {
		panic(err)
	}
	return id
}
