package control

import (
	"strconv"
	"strings"

	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// hitOperator is one comparison/modulus operator recognised in a hit
// condition expression, per spec §4.3.5's hit-count grammar.
type hitOperator string

const (
	opEQ  hitOperator = "=="
	opNE  hitOperator = "!="
	opGE  hitOperator = ">="
	opLE  hitOperator = "<="
	opGT  hitOperator = ">"
	opLT  hitOperator = "<"
	opMod hitOperator = "%"
)

// orderedOperators lists multi-character operators before their
// single-character prefixes, so parsing a leading token never matches ">"
// when the text actually starts with ">=".
var orderedOperators = []hitOperator{opGE, opLE, opEQ, opNE, opGT, opLT, opMod}

// EvaluateHitCondition parses and evaluates a hit-condition expression
// against the current hit count, per spec §4.3.5:
//
//	""            always fires (no hit-condition filter)
//	"N"           fires when count == N (bare number, implicit ==)
//	"> N" ">= N"
//	"< N" "<= N"
//	"== N" "!= N"
//	"% N"         fires every Nth hit; "% 0" is a malformed expression
//
// Whitespace around the operator and operand is ignored.
func EvaluateHitCondition(expr string, count int) (bool, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return true, nil
	}

	op, operandStr, ok := splitHitCondition(trimmed)
	if !ok {
		op = opEQ
		operandStr = trimmed
	}

	operand, err := strconv.Atoi(strings.TrimSpace(operandStr))
	if err != nil {
		return false, &wferr.ProtocolError{
			Code:    -32001,
			Message: "malformed hit condition \"" + expr + "\": " + err.Error(),
		}
	}

	switch op {
	case opEQ:
		return count == operand, nil
	case opNE:
		return count != operand, nil
	case opGE:
		return count >= operand, nil
	case opLE:
		return count <= operand, nil
	case opGT:
		return count > operand, nil
	case opLT:
		return count < operand, nil
	case opMod:
		if operand == 0 {
			return false, &wferr.ProtocolError{
				Code:    -32001,
				Message: "malformed hit condition \"" + expr + "\": modulus by zero",
			}
		}
		return count%operand == 0, nil
	default:
		return false, &wferr.ProtocolError{Code: -32001, Message: "malformed hit condition \"" + expr + "\""}
	}
}

// splitHitCondition splits a trimmed expression into its leading operator
// and trailing operand, if it has a recognised operator prefix.
func splitHitCondition(trimmed string) (op hitOperator, operand string, ok bool) {
	for _, candidate := range orderedOperators {
		if strings.HasPrefix(trimmed, string(candidate)) {
			return candidate, trimmed[len(candidate):], true
		}
	}
	return "", "", false
}
