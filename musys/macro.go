package musys

import (
	"strconv"
	"strings"

	"github.com/hornc/musys/source"
)

// Activation is a single macro call: the macro's body with its formal
// parameters (%A..%Z) already replaced by the decimal string of each
// argument's evaluated value. Grounded on Macro.call in
// original_source/musysim.py, which performs exactly this textual
// substitution at call time rather than retaining a separate argument
// list (spec.md's "retained list of evaluated values" collapses into the
// substitution itself - see SPEC_FULL.md §5).
type Activation struct {
	Name string
	Body string
}

// newActivation builds an Activation by substituting %A, %B, ... in def's
// body with the decimal string of each value in args, in order.
func newActivation(def *source.Macro, args []int) Activation {
	body := def.Body
	for i, v := range args {
		placeholder := "%" + string(rune('A'+i))
		body = strings.ReplaceAll(body, placeholder, strconv.Itoa(v))
	}
	return Activation{Name: def.Name, Body: body}
}
