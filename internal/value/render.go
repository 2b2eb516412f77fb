package value

import (
	"math/big"

	"github.com/joeycumines/floater"
	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// Render renders a Value to a string per spec §4.3.5: nil→"nil";
// boolean→"true"/"false"; number→canonical decimal; string→raw;
// table/function/userdata/thread→"type:0xADDR".
func (v Value) Render() string {
	switch v.Kind {
	case Nil:
		return "nil"
	case Boolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case Number:
		return CanonicalDecimal(v.Num)
	case String:
		return string(v.Str)
	case Table, Function, UserData, Thread:
		return v.Kind.String() + ":" + v.addr()
	default:
		return ""
	}
}

// CanonicalDecimal renders a float64 as the canonical decimal string used
// for logpoint interpolation and variable display. Finite values are
// rendered exactly via a big.Rat conversion (floater.FormatDecimalRat);
// non-finite values (NaN, +/-Inf) fall back to the JSON-safe sentinel
// strings jsonenc uses at the wire-encoding layer, since the host
// interpreter itself can legally produce them (e.g. `1/0`) and there is no
// other canonical rendering for them.
func CanonicalDecimal(f float64) string {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		// NaN or +/-Inf: reuse jsonenc's JSON-safe sentinel encoding and
		// strip the quotes it adds for JSON string context.
		b := jsonenc.AppendFloat64(nil, f)
		if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
			return string(b[1 : len(b)-1])
		}
		return string(b)
	}
	return floater.FormatDecimalRat(r, -1, 53)
}
