// Package value implements the tagged Value variant shared by the
// interpreter state wrapper (L1), debug control (L2), and the DAP session
// (L4) for any materialized scripting value crossing those boundaries.
package value

import "fmt"

// Kind discriminates the variants of Value.
type Kind uint8

const (
	Nil Kind = iota
	Boolean
	Number
	String
	Table
	Function
	UserData
	Thread
)

func (k Kind) String() string {
	switch k {
	case Nil:
		return "nil"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Table:
		return "table"
	case Function:
		return "function"
	case UserData:
		return "userdata"
	case Thread:
		return "thread"
	default:
		return "unknown"
	}
}

// Ref is a registry reference issued by the interpreter's registry,
// stable only for the lifetime of the underlying registry binding.
type Ref uint64

// Value is a tagged variant for any materialized scripting value.
// Only the fields relevant to Kind are meaningful; others are zero.
type Value struct {
	Kind Kind

	Bool bool
	Num  float64
	Str  []byte

	Ref        Ref
	LengthHint int    // Table: length hint
	Name       string // Function: optional name
}

func Nil_() Value                { return Value{Kind: Nil} }
func Bool(b bool) Value          { return Value{Kind: Boolean, Bool: b} }
func Num(n float64) Value        { return Value{Kind: Number, Num: n} }
func Str(s string) Value         { return Value{Kind: String, Str: []byte(s)} }
func TableRef(r Ref, n int) Value {
	return Value{Kind: Table, Ref: r, LengthHint: n}
}
func FuncRef(r Ref, name string) Value {
	return Value{Kind: Function, Ref: r, Name: name}
}
func UserDataRef(r Ref) Value { return Value{Kind: UserData, Ref: r} }
func ThreadRef(r Ref) Value   { return Value{Kind: Thread, Ref: r} }

// Truthy implements the host language's truthiness rule: nil and false are
// falsy, everything else is truthy (spec §4.3.5).
func (v Value) Truthy() bool {
	switch v.Kind {
	case Nil:
		return false
	case Boolean:
		return v.Bool
	default:
		return true
	}
}

// DAPType returns the DAP `type` field for an `evaluate` response body.
func (v Value) DAPType() string {
	return v.Kind.String()
}

// addr renders a stable, low-entropy "address" for reference types, derived
// from the registry reference rather than a real pointer (the interpreter
// never exposes a raw pointer across the L1 boundary).
func (v Value) addr() string {
	return fmt.Sprintf("0x%08X", uint64(v.Ref))
}
