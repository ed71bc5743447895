// Package debugger implements the optional post-run inspection shell
// (SPEC_FULL.md §4): a line-oriented command loop over a completed
// Engine run, letting the operator inspect variables, buses and data
// paragraphs without re-running the interpreter.
//
// Grounded on host/settings.go and host/cmds.go: the same reflective,
// prefixtree-backed settings object and beevik/cmd command tree the
// teacher uses for its own debugger, repurposed for MUSYS's inspection
// commands instead of 6502 breakpoints and disassembly.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the shell's own display preferences. Unlike the
// teacher's settings (hex mode, disassembly line counts), MUSYS's
// shell only needs a numeric radix for displaying register and bus
// values and a verbosity toggle that echoes each command it reads.
type settings struct {
	Verbose bool `doc:"echo each command before executing it"`
	Radix   int  `doc:"radix (8 or 10) used to display EXP and variables"`
}

func newSettings() *settings {
	return &settings{
		Verbose: false,
		Radix:   10,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var str string
		switch f.kind {
		case reflect.Bool:
			str = fmt.Sprintf("    %-10s %v", f.name, v.Bool())
		default:
			str = fmt.Sprintf("    %-10s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-24s (%s)\n", str, f.doc)
	}
}

func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String && vIn.Type().Kind() != reflect.String) ||
		(f.kind != reflect.String && vIn.Type().Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}
	vInConverted := vIn.Convert(f.typ)

	vOut := reflect.ValueOf(s).Elem().Field(f.index).Addr().Elem()
	vOut.Set(vInConverted)

	return nil
}
