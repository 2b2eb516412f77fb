package luastate

import "github.com/wayfinder-dap/wayfinder/internal/value"

// EvaluateInFrame compiles expr as a `return <expr>` chunk and calls it
// with zero arguments, expecting exactly one result. frameID is not used:
// expr is compiled as a fresh chunk, so its free names resolve against the
// global environment only, not against the locals or upvalues of any
// frame.
func (s *State) EvaluateInFrame(frameID int, expr string) (value.Value, error) {
	chunkName := "=(evaluate)"
	if err := s.LoadString("return "+expr, chunkName); err != nil {
		return value.Nil_(), err
	}
	if err := s.CallProtected(0, 1); err != nil {
		return value.Nil_(), err
	}
	v := s.ToValue(s.StackTop())
	s.Pop(1)
	return v, nil
}
