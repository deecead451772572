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
	"fmt"
)

var (
	// ErrFormat is returned when a GO ID is malformed. The returned error is
	// always a *FormatError that wraps ErrFormat.
	ErrFormat = errors.New("malformed GO ID")

	// ErrNoSuchTerm is returned when a term is not a member of the ontology.
	ErrNoSuchTerm = errors.New("no such term")

	// ErrNoSuchRelationship is returned when removing a relationship that
	// doesn't exist.
	ErrNoSuchRelationship = errors.New("no such relationship")

	// ErrUnknownRelation is returned when a relationship type name isn't
	// registered.
	ErrUnknownRelation = errors.New("unknown relationship type")

	// ErrInternalStorageInconsistent indicates the internal indexes of a store
	// disagree with each other. It signals a bug in the store implementation;
	// there is nothing a caller can do to recover from it.
	ErrInternalStorageInconsistent = errors.New("internal storage inconsistent")

	// ErrDuplicateTerm is returned by AddTerm when the term's ID or one of its
	// aliases is already in use.
	ErrDuplicateTerm = errors.New("duplicate term")

	// ErrTermOwned is returned by AddTerm when the term already belongs to
	// another ontology.
	ErrTermOwned = errors.New("term belongs to another ontology")

	// ErrTermAttached is returned when editing the aliases or tags of a term
	// that has already been added to an ontology.
	ErrTermAttached = errors.New("term is attached to an ontology")

	// ErrAbstractRelType is returned when trying to store a relationship whose
	// type only exists for rule matching (Inheritable and Any).
	ErrAbstractRelType = errors.New("abstract relationship type")

	// ErrReadOnly is returned by the mutating methods of read-only stores.
	ErrReadOnly = errors.New("ontology is read-only")

	// ErrUnknownEvidenceCode is returned when parsing an evidence code that
	// isn't one of the GO evidence codes.
	ErrUnknownEvidenceCode = errors.New("unknown evidence code")

	// ErrUnknownNamespace is returned when parsing a GO namespace that isn't
	// one of P, F and C or their names.
	ErrUnknownNamespace = errors.New("unknown GO namespace")

	// ErrHalt may be returned by a Terms or ReadAnnotations callback to stop
	// the enumeration without an error being returned.
	ErrHalt = errors.New("ontology: no need to continue enumerating")
)

// FormatError describes a value that could not be parsed as a GO ID.
type FormatError struct {
	// Input is the rejected value.
	Input interface{}
	// Reason explains what is wrong with Input.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrFormat, fmt.Sprint(e.Input), e.Reason)
}

// Unwrap allows errors.Is(err, ErrFormat).
func (e *FormatError) Unwrap() error {
	return ErrFormat
}
