package dapsession

import (
	"encoding/json"
	"strconv"

	"github.com/wayfinder-dap/wayfinder/internal/control"
	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// dispatch decodes one request body, routes it by method, and returns the
// response to write plus whether the session should terminate after this
// message (disconnect/terminate), per spec §4.5.2.
func (s *Session) dispatch(body []byte) (Response, bool) {
	req, err := ParseRequest(body)
	if err != nil {
		return errorResponse(0, err), false
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "launch":
		return s.handleLaunch(req)
	case "attach":
		return s.handleAttach(req)
	case "disconnect", "terminate":
		return Response{ID: req.ID, Result: map[string]bool{"ok": true}}, true
	case "setBreakpoints":
		return s.handleSetBreakpoints(req)
	case "setFunctionBreakpoints":
		return s.handleSetFunctionBreakpoints(req)
	case "setExceptionBreakpoints":
		return s.handleSetExceptionBreakpoints(req)
	case "setDataBreakpoints":
		return s.handleSetDataBreakpoints(req)
	case "threads":
		return s.handleThreads(req)
	case "configurationDone":
		s.configured = true
		return Response{ID: req.ID, Result: map[string]bool{"ok": true}}, false
	case "continue":
		return s.handleContinue(req)
	case "next":
		return s.handleStep(req, control.StepOver)
	case "stepIn":
		return s.handleStep(req, control.StepIn)
	case "stepOut":
		return s.handleStep(req, control.StepOut)
	case "pause":
		return s.handlePause(req)
	case "stackTrace":
		return s.handleStackTrace(req)
	case "scopes":
		return s.handleScopes(req)
	case "variables":
		return s.handleVariables(req)
	case "evaluate":
		return s.handleEvaluate(req)
	case "source":
		return errorResponse(req.ID, &wferr.NotImplementedError{What: "source request"}), false
	case "hotReload":
		return s.handleHotReload(req)
	default:
		return errorResponse(req.ID, wferr.ErrUnknownMethod(req.Method)), false
	}
}

func (s *Session) handleInitialize(req Request) (Response, bool) {
	return Response{ID: req.ID, Result: defaultCapabilities()}, false
}

type launchParams struct {
	Program string `json:"program"`
	StopOnEntry bool `json:"stopOnEntry"`
}

func (s *Session) handleLaunch(req Request) (Response, bool) {
	var p launchParams
	_ = json.Unmarshal(req.Params, &p)
	if p.Program != "" {
		s.generatedPath = p.Program
		if err := s.translator.Load(p.Program); err != nil {
			s.log.Warning().Str("program", p.Program).Log("source map load failed; position pass-through in effect")
		}
	}
	if !s.hasTarget() {
		return errorResponse(req.ID, &wferr.NoDebugSessionError{}), false
	}
	if p.StopOnEntry || s.cfg.StopOnEntry {
		s.exec.ArmStep(control.StepIn, s.state.CallDepth())
	}
	return Response{ID: req.ID, Result: map[string]bool{"ok": true}}, false
}

func (s *Session) handleAttach(req Request) (Response, bool) {
	return Response{ID: req.ID, Result: map[string]bool{"ok": true}}, false
}

type sourceRef struct {
	Path string `json:"path"`
}

type sourceBreakpointInput struct {
	Line         int    `json:"line"`
	Condition    string `json:"condition"`
	HitCondition string `json:"hitCondition"`
	LogMessage   string `json:"logMessage"`
}

type setBreakpointsParams struct {
	Source      sourceRef               `json:"source"`
	Breakpoints []sourceBreakpointInput `json:"breakpoints"`
}

func (s *Session) handleSetBreakpoints(req Request) (Response, bool) {
	var p setBreakpointsParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return errorResponse(req.ID, &wferr.ProtocolError{Code: -32602, Message: "invalid setBreakpoints params"}), false
	}

	genPath, _ := s.translateInbound(p.Source.Path, 0, 0)

	inputs := make([]control.LineBreakpoint, 0, len(p.Breakpoints))
	for _, in := range p.Breakpoints {
		_, genLine := s.translateInbound(p.Source.Path, in.Line, 0)
		inputs = append(inputs, control.LineBreakpoint{
			Line:         genLine,
			Condition:    in.Condition,
			HitCondition: in.HitCondition,
			LogMessage:   in.LogMessage,
		})
	}

	bps := s.bp.SetLineBreakpoints(genPath, inputs)
	out := make([]map[string]interface{}, 0, len(bps))
	for _, bp := range bps {
		out = append(out, map[string]interface{}{"verified": bp.Verified, "line": bp.Line, "id": bp.ID})
	}
	return Response{ID: req.ID, Result: map[string]interface{}{"breakpoints": out}}, false
}

type functionBreakpointInput struct {
	Name      string `json:"name"`
	Condition string `json:"condition"`
}

type setFunctionBreakpointsParams struct {
	Breakpoints []functionBreakpointInput `json:"breakpoints"`
}

func (s *Session) handleSetFunctionBreakpoints(req Request) (Response, bool) {
	var p setFunctionBreakpointsParams
	_ = json.Unmarshal(req.Params, &p)

	inputs := make([]control.FunctionBreakpoint, 0, len(p.Breakpoints))
	for _, in := range p.Breakpoints {
		inputs = append(inputs, control.FunctionBreakpoint{Name: in.Name, Condition: in.Condition})
	}
	bps := s.bp.SetFunctionBreakpoints(inputs)
	out := make([]map[string]interface{}, 0, len(bps))
	for _, bp := range bps {
		out = append(out, map[string]interface{}{"verified": bp.Verified, "id": bp.ID})
	}
	return Response{ID: req.ID, Result: map[string]interface{}{"breakpoints": out}}, false
}

type setExceptionBreakpointsParams struct {
	Filters []string `json:"filters"`
}

func (s *Session) handleSetExceptionBreakpoints(req Request) (Response, bool) {
	var p setExceptionBreakpointsParams
	_ = json.Unmarshal(req.Params, &p)
	s.bp.SetExceptionFilters(p.Filters)
	return Response{ID: req.ID, Result: map[string]bool{"ok": true}}, false
}

type dataBreakpointInput struct {
	DataID       string `json:"dataId"`
	AccessType   string `json:"accessType"`
	Condition    string `json:"condition"`
	HitCondition string `json:"hitCondition"`
}

type setDataBreakpointsParams struct {
	Breakpoints []dataBreakpointInput `json:"breakpoints"`
}

// handleSetDataBreakpoints replaces the watchpoint catalog wholesale, per
// the `setDataBreakpoints` request's usual "full replacement" semantics
// (mirroring setBreakpoints/setFunctionBreakpoints). dataId is taken
// directly as the expression to re-evaluate at each sample, since this
// session has no `dataBreakpointInfo` request minting opaque IDs from a
// prior variables response; a client names a global or local by expression
// the same way `evaluate` does.
func (s *Session) handleSetDataBreakpoints(req Request) (Response, bool) {
	var p setDataBreakpointsParams
	_ = json.Unmarshal(req.Params, &p)

	s.bp.ClearDataBreakpoints()
	out := make([]map[string]interface{}, 0, len(p.Breakpoints))
	for _, in := range p.Breakpoints {
		bp := s.bp.AddDataBreakpoint(control.DataBreakpoint{
			Path:         in.DataID,
			Kind:         control.DataGlobal,
			Access:       parseAccessMode(in.AccessType),
			Condition:    in.Condition,
			HitCondition: in.HitCondition,
		})
		out = append(out, map[string]interface{}{"verified": true, "id": bp.ID})
	}
	return Response{ID: req.ID, Result: map[string]interface{}{"breakpoints": out}}, false
}

func parseAccessMode(accessType string) control.DataAccessMode {
	switch accessType {
	case "write":
		return control.AccessWrite
	case "readWrite":
		return control.AccessReadWrite
	default:
		return control.AccessRead
	}
}

func (s *Session) handleThreads(req Request) (Response, bool) {
	list := s.threads.List()
	out := make([]map[string]interface{}, 0, len(list))
	for _, t := range list {
		out = append(out, map[string]interface{}{"id": t.ThreadID, "name": threadDisplayName(t)})
	}
	return Response{ID: req.ID, Result: map[string]interface{}{"threads": out}}, false
}

func threadDisplayName(t control.CoroutineInfo) string {
	if t.Name != "" {
		return t.Name + " (" + string(t.Status) + ")"
	}
	return "coroutine " + strconv.Itoa(t.ThreadID) + " (" + string(t.Status) + ")"
}

func (s *Session) handleContinue(req Request) (Response, bool) {
	if !s.hasTarget() {
		return errorResponse(req.ID, &wferr.NoDebugSessionError{}), false
	}
	s.exec.DisarmStep()
	s.exec.SetPaused(false)
	return Response{ID: req.ID, Result: map[string]bool{"allThreadsContinued": true}}, false
}

func (s *Session) handleStep(req Request, mode control.StepMode) (Response, bool) {
	if !s.hasTarget() {
		return errorResponse(req.ID, &wferr.NoDebugSessionError{}), false
	}
	s.exec.ArmStep(mode, s.state.CallDepth())
	s.exec.SetPaused(false)
	return Response{ID: req.ID, Result: map[string]bool{"ok": true}}, false
}

func (s *Session) handlePause(req Request) (Response, bool) {
	if !s.hasTarget() {
		return errorResponse(req.ID, &wferr.NoDebugSessionError{}), false
	}
	s.exec.SetPaused(true)
	return Response{ID: req.ID, Result: map[string]bool{"ok": true}}, false
}

func (s *Session) handleStackTrace(req Request) (Response, bool) {
	if !s.hasTarget() {
		return errorResponse(req.ID, &wferr.NoDebugSessionError{}), false
	}
	const maxFrames = 10
	depth := s.state.CallDepth()
	if depth > maxFrames {
		depth = maxFrames
	}
	frames := make([]map[string]interface{}, 0, depth)
	for level := int32(0); int(level) < depth; level++ {
		info, ok := s.state.FrameAt(level)
		if !ok {
			break
		}
		path, line := s.translateOutbound(info.Source, int(info.CurrentLine))
		frames = append(frames, map[string]interface{}{
			"id":     level,
			"name":   frameName(info.Name),
			"source": map[string]string{"path": path},
			"line":   line,
			"column": 0,
		})
	}
	return Response{ID: req.ID, Result: map[string]interface{}{"stackFrames": frames, "totalFrames": len(frames)}}, false
}

func frameName(name string) string {
	if name == "" {
		return "?"
	}
	return name
}

type scopesParams struct {
	FrameID int `json:"frameId"`
}

func (s *Session) handleScopes(req Request) (Response, bool) {
	var p scopesParams
	_ = json.Unmarshal(req.Params, &p)
	scopes := []map[string]interface{}{
		{"name": "Locals", "variablesReference": p.FrameID, "expensive": false},
		{"name": "Globals", "variablesReference": refGlobals, "expensive": false},
	}
	return Response{ID: req.ID, Result: map[string]interface{}{"scopes": scopes}}, false
}

type variablesParams struct {
	VariablesReference int `json:"variablesReference"`
}

func (s *Session) handleVariables(req Request) (Response, bool) {
	var p variablesParams
	_ = json.Unmarshal(req.Params, &p)
	vars, err := s.Variables(p.VariablesReference)
	if err != nil {
		return errorResponse(req.ID, err), false
	}
	return Response{ID: req.ID, Result: map[string]interface{}{"variables": vars}}, false
}

type evaluateParams struct {
	Expression string `json:"expression"`
	FrameID    int    `json:"frameId"`
}

func (s *Session) handleEvaluate(req Request) (Response, bool) {
	if !s.hasTarget() {
		return errorResponse(req.ID, &wferr.NoDebugSessionError{}), false
	}
	var p evaluateParams
	_ = json.Unmarshal(req.Params, &p)

	v, err := s.state.Evaluate(p.FrameID, p.Expression)
	if err != nil {
		return Response{ID: req.ID, Result: map[string]interface{}{
			"result": "<error: " + err.Error() + ">",
			"type":   "error",
		}}, false
	}
	return Response{ID: req.ID, Result: map[string]interface{}{
		"result":              v.Render(),
		"type":                v.DAPType(),
		"variablesReference":  s.variableRefFor(v),
	}}, false
}

type hotReloadParams struct {
	Source string `json:"source"`
	Name   string `json:"name"`
}

func (s *Session) handleHotReload(req Request) (Response, bool) {
	if !s.hasTarget() {
		return errorResponse(req.ID, &wferr.NoDebugSessionError{}), false
	}
	var p hotReloadParams
	_ = json.Unmarshal(req.Params, &p)

	chunkName := p.Name
	if chunkName == "" {
		chunkName = "=(hotReload)"
	}

	result := control.PerformReload(s.state, s.state, func() error {
		if err := s.state.LoadString(p.Source, chunkName); err != nil {
			return err
		}
		return s.state.CallProtected(0, 1)
	})

	warnings := make([]map[string]string, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		warnings = append(warnings, map[string]string{"severity": string(d.Severity), "message": d.Message})
	}

	body := map[string]interface{}{
		"success":  result.Success(),
		"warnings": warnings,
	}
	if result.LoadErr != nil {
		body["message"] = result.LoadErr.Error()
	} else if result.RunErr != nil {
		body["message"] = result.RunErr.Error()
	}
	return Response{ID: req.ID, Result: body}, false
}
