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

// Package config defines the JSON configuration file of the goinfer tool.
package config

import (
	"fmt"

	"github.com/ntamas/biopython/infer"
	"github.com/ntamas/biopython/ontology/sqlstore"
	"github.com/ntamas/biopython/rules"
)

// Config is the top-level configuration.
type Config struct {
	// Database describes the relational database holding the ontology.
	Database *Database `json:"database"`
	// Rules lists the composition rules in order. The default rules are used
	// when it's empty.
	Rules []Rule `json:"rules,omitempty"`
	// MaxSteps bounds the number of expansions of each inference search. Zero
	// means unbounded.
	MaxSteps int `json:"maxSteps,omitempty"`
}

// Database describes a database/sql connection.
type Database struct {
	// Driver is the database/sql driver name, such as "sqlite" or "postgres".
	Driver string `json:"driver"`
	// DSN is the driver-specific data source name.
	DSN string `json:"dsn"`
	// Placeholder is the parameter marker style: "qmark", "numeric",
	// "format" or "dollar". If empty, the usual style of Driver is used.
	Placeholder string `json:"placeholder,omitempty"`
}

// Rule is a composition rule given by names, as accepted by rules.Parse.
type Rule struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Result string `json:"result"`
}

// PlaceholderStyle returns the placeholder style to use with the database.
func (db *Database) PlaceholderStyle() (sqlstore.PlaceholderStyle, error) {
	if db.Placeholder == "" {
		return sqlstore.DefaultPlaceholderStyle(db.Driver), nil
	}
	return sqlstore.ParsePlaceholderStyle(db.Placeholder)
}

// RuleSet builds the configured rule set.
func (cfg *Config) RuleSet() (*rules.Rules, error) {
	if len(cfg.Rules) == 0 {
		return rules.Default(), nil
	}
	parsed := make([]rules.Rule, len(cfg.Rules))
	for i, r := range cfg.Rules {
		var err error
		parsed[i], err = rules.Parse(r.First, r.Second, r.Result)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %d (%s, %s, %s): %w", i+1, r.First, r.Second, r.Result, err)
		}
	}
	return rules.New(parsed...), nil
}

// Engine returns an inference engine using the configured rules and limits.
func (cfg *Config) Engine() (*infer.Engine, error) {
	rs, err := cfg.RuleSet()
	if err != nil {
		return nil, err
	}
	return infer.New(rs, infer.Options{MaxSteps: cfg.MaxSteps}), nil
}
