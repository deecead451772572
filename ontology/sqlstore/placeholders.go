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
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderStyle identifies how a database driver expects query parameters
// to be marked.
type PlaceholderStyle string

// The supported placeholder styles.
const (
	// QMark marks every parameter with "?" (sqlite, MySQL).
	QMark PlaceholderStyle = "qmark"
	// Numeric numbers the parameters ":1", ":2" and so on (Oracle).
	Numeric PlaceholderStyle = "numeric"
	// Format uses printf style "%s" markers.
	Format PlaceholderStyle = "format"
	// Dollar numbers the parameters "$1", "$2" and so on (PostgreSQL).
	Dollar PlaceholderStyle = "dollar"
)

// formatMarker is the marker used in the queries of this package before they
// are rewritten.
const formatMarker = "%s"

// ParsePlaceholderStyle returns the style with the given name. The empty name
// selects QMark.
func ParsePlaceholderStyle(name string) (PlaceholderStyle, error) {
	switch style := PlaceholderStyle(strings.ToLower(strings.TrimSpace(name))); style {
	case "":
		return QMark, nil
	case QMark, Numeric, Format, Dollar:
		return style, nil
	default:
		return "", fmt.Errorf("unknown placeholder style %q (expected %s, %s, %s or %s)",
			name, QMark, Numeric, Format, Dollar)
	}
}

// DefaultPlaceholderStyle returns the placeholder style expected by the named
// database/sql driver, or QMark for drivers it doesn't know.
func DefaultPlaceholderStyle(driver string) PlaceholderStyle {
	switch driver {
	case "postgres", "pgx":
		return Dollar
	case "godror", "oracle":
		return Numeric
	default:
		return QMark
	}
}

// RewriteQueryMarkers translates the "%s" parameter markers of query to the
// given style. Format leaves the query unchanged.
func RewriteQueryMarkers(query string, style PlaceholderStyle) string {
	if style == Format || !strings.Contains(query, formatMarker) {
		return query
	}
	parts := strings.Split(query, formatMarker)
	var b strings.Builder
	b.Grow(len(query) + 2*len(parts))
	b.WriteString(parts[0])
	for i, part := range parts[1:] {
		switch style {
		case Numeric:
			b.WriteString(":" + strconv.Itoa(i+1))
		case Dollar:
			b.WriteString("$" + strconv.Itoa(i+1))
		default:
			b.WriteByte('?')
		}
		b.WriteString(part)
	}
	return b.String()
}

// markerList returns n comma separated "%s" markers, for use in IN lists.
func markerList(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(formatMarker+", ", n-1) + formatMarker
}
