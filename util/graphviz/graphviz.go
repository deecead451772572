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

// Package graphviz renders diagrams from dot input.
package graphviz

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Filetype is the file format of the output.
type Filetype int

// Supported Filetypes. DOT writes the dot input itself and doesn't require
// Graphviz to be installed.
const (
	PDF Filetype = 1
	PNG Filetype = 2
	SVG Filetype = 3
	DOT Filetype = 4
)

var filetypeNames = map[string]Filetype{
	"pdf": PDF,
	"png": PNG,
	"svg": SVG,
	"dot": DOT,
	"gv":  DOT,
}

// ParseFiletype returns the Filetype named by s, such as "svg" or "dot".
func ParseFiletype(s string) (Filetype, error) {
	if ft, ok := filetypeNames[strings.ToLower(s)]; ok {
		return ft, nil
	}
	return 0, fmt.Errorf("unknown graphviz filetype: %q", s)
}

func (ft Filetype) String() string {
	switch ft {
	case PDF:
		return "pdf"
	case PNG:
		return "png"
	case SVG:
		return "svg"
	case DOT:
		return "dot"
	default:
		return fmt.Sprintf("Filetype(%d)", int(ft))
	}
}

// Options to Create.
type Options struct {
	// Unless provided, Create will attempt to autodetect this from the filename.
	Filetype Filetype
}

// Create writes an image file from a Graphviz spec. For every type but DOT it
// invokes the "dot" program. 'generate' should write the Graphviz spec into
// the given writer; it may safely ignore errors from the writer.
func Create(filename string, generate func(io.Writer), options Options) error {
	if options.Filetype == 0 {
		ext := strings.TrimPrefix(filepath.Ext(filename), ".")
		ft, err := ParseFiletype(ext)
		if err != nil {
			return fmt.Errorf("could not determine filetype from filename: %v", filename)
		}
		options.Filetype = ft
	}
	if options.Filetype == DOT {
		return writeSpec(filename, generate)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	cmd := exec.Command("dot")
	switch options.Filetype {
	case PDF, PNG, SVG:
		cmd.Args = append(cmd.Args, "-T"+options.Filetype.String())
	default:
		log.Panicf("Unknown file type: %v", options.Filetype)
	}
	cmd.Stdout = file
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	go func() {
		defer stdin.Close()
		generate(stdin)
	}()
	var errOut strings.Builder
	cmd.Stderr = &errOut
	err = cmd.Run()
	if err != nil {
		return fmt.Errorf("error executing dot: %v. Stderr: %v", err, errOut.String())
	}
	return file.Close()
}

func writeSpec(filename string, generate func(io.Writer)) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	w := &errWriter{w: file}
	generate(w)
	if w.err != nil {
		return fmt.Errorf("error writing %v: %v", filename, w.err)
	}
	return file.Close()
}

// errWriter remembers the first write error, so generate functions may ignore
// them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
