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

package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_RewriteQueryMarkers(t *testing.T) {
	query := "SELECT * FROM term WHERE acc = %s AND name = %s"
	tests := []struct {
		style PlaceholderStyle
		exp   string
	}{
		{QMark, "SELECT * FROM term WHERE acc = ? AND name = ?"},
		{Numeric, "SELECT * FROM term WHERE acc = :1 AND name = :2"},
		{Dollar, "SELECT * FROM term WHERE acc = $1 AND name = $2"},
		{Format, query},
	}
	for _, test := range tests {
		t.Run(string(test.style), func(t *testing.T) {
			assert.Equal(t, test.exp, RewriteQueryMarkers(query, test.style))
		})
	}
	assert.Equal(t, "SELECT 1", RewriteQueryMarkers("SELECT 1", Numeric))
	assert.Equal(t, "f(:1, :2, :3)", RewriteQueryMarkers("f(%s, %s, %s)", Numeric))
	assert.Equal(t, "acc LIKE 'GO:_______'", RewriteQueryMarkers("acc LIKE 'GO:_______'", QMark))
}

func Test_ParsePlaceholderStyle(t *testing.T) {
	for in, exp := range map[string]PlaceholderStyle{
		"":        QMark,
		"qmark":   QMark,
		"Numeric": Numeric,
		" format": Format,
		"dollar":  Dollar,
	} {
		style, err := ParsePlaceholderStyle(in)
		assert.NoError(t, err, in)
		assert.Equal(t, exp, style, in)
	}
	_, err := ParsePlaceholderStyle("named")
	assert.EqualError(t, err, `unknown placeholder style "named" (expected qmark, numeric, format or dollar)`)
}

func Test_DefaultPlaceholderStyle(t *testing.T) {
	assert.Equal(t, Dollar, DefaultPlaceholderStyle("postgres"))
	assert.Equal(t, QMark, DefaultPlaceholderStyle("sqlite"))
	assert.Equal(t, Numeric, DefaultPlaceholderStyle("godror"))
}

func Test_markerList(t *testing.T) {
	assert.Equal(t, "", markerList(0))
	assert.Equal(t, "%s", markerList(1))
	assert.Equal(t, "%s, %s, %s", markerList(3))
}
