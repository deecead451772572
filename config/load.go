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

package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Load reads a goinfer configuration from a JSON file and validates it. Every
// error it returns mentions filename.
func Load(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("config %v: %v", filename, err)
	}
	return cfg, nil
}

// decode parses a single JSON object from r. Unknown fields, a null value and
// trailing data are all rejected.
func decode(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var cfg *Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	if cfg == nil {
		return nil, errors.New("expected an object, found null")
	}
	if dec.More() {
		return nil, errors.New("trailing data after the configuration object")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Database == nil {
		return errors.New("database is required")
	}
	if cfg.Database.Driver == "" {
		return errors.New("database.driver is required")
	}
	if _, err := cfg.Database.PlaceholderStyle(); err != nil {
		return err
	}
	if cfg.MaxSteps < 0 {
		return fmt.Errorf("maxSteps must not be negative, got %d", cfg.MaxSteps)
	}
	_, err := cfg.RuleSet()
	return err
}

// Write saves cfg to filename as tab-indented JSON, replacing any existing
// file. Every error it returns mentions filename.
func Write(cfg *Config, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := errors.Join(enc.Encode(cfg), w.Flush(), f.Close()); err != nil {
		return fmt.Errorf("config %v: cannot save: %v", filename, err)
	}
	return nil
}
