package main

import (
	"encoding/json"
	"fmt"
	"io"

	goyaml "github.com/goccy/go-yaml"

	"github.com/gemcore/cdl/ast"
	"github.com/gemcore/cdl/internal/printer"
)

// renderDescription writes desc to w in the requested format. "text" emits
// the canonical CDL source via internal/printer; "json" emits the
// description tree's JSON field shape directly; "yaml" round-trips the
// same JSON shape through encoding/json into a generic value so
// goccy/go-yaml can marshal it without needing parallel yaml struct tags.
func renderDescription(w io.Writer, desc ast.Description, format string) error {
	switch format {
	case "json":
		return writeJSON(w, desc)
	case "yaml":
		return writeYAML(w, desc)
	case "text", "":
		_, err := io.WriteString(w, printer.String(desc)+"\n")
		return err
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic interface{}
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}
	out, err := goyaml.Marshal(generic)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
