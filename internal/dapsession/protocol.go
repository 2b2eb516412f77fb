// Package dapsession implements the DAP session orchestrator (L4): request
// routing, capability negotiation, the pause/continue/step dispatch loop,
// and boundary position translation via internal/sourcemap.
package dapsession

import (
	"encoding/json"

	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// Request is the session's normalized form of an inbound DAP message,
// accepting both the {id, method, params} shape and the legacy DAP-v1
// {seq, type:"request", command, arguments} shape (spec §6).
type Request struct {
	ID     uint64
	Method string
	Params json.RawMessage
}

type requestV2 struct {
	ID     uint64          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type requestV1 struct {
	Seq       uint64          `json:"seq"`
	Type      string          `json:"type"`
	Command   string          `json:"command"`
	Arguments json.RawMessage `json:"arguments"`
}

// ParseRequest decodes a raw message body into a Request, normalizing the
// DAP-v1 shape to the session's internal {id, method, params} form. There is
// no third-party JSON decoder in the retrieval pack capable of decoding an
// arbitrary externally-defined document shape (jsonenc, used elsewhere in
// this module, is an append-only encoder for structured logging, not a
// decoder), so this is one of the two places the module reaches for
// encoding/json directly — the other being internal/sourcemap's v3 document
// parser.
func ParseRequest(body []byte) (Request, error) {
	var v1 requestV1
	if err := json.Unmarshal(body, &v1); err == nil && v1.Type == "request" && v1.Command != "" {
		return Request{ID: v1.Seq, Method: v1.Command, Params: v1.Arguments}, nil
	}

	var v2 requestV2
	if err := json.Unmarshal(body, &v2); err != nil {
		return Request{}, &wferr.TransportError{Op: "decode request", Cause: err}
	}
	return Request{ID: v2.ID, Method: v2.Method, Params: v2.Params}, nil
}

// ErrorBody is the {code, message} shape of a failed response.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Response is an outbound {id, result} or {id, error} message.
type Response struct {
	ID     uint64      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
}

// Event is an outbound {event, body} message, unsolicited by any request.
type Event struct {
	Event string      `json:"event"`
	Body  interface{} `json:"body,omitempty"`
}

// Marshal encodes any of Response/Event (or a handler's returned value) to
// its wire JSON form.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// errorResponse builds a Response carrying err, converting wferr taxonomy
// members to their DAP-facing code/message per spec §7.
func errorResponse(id uint64, err error) Response {
	return Response{ID: id, Error: toDAPError(err)}
}

func toDAPError(err error) *ErrorBody {
	switch e := err.(type) {
	case *wferr.ProtocolError:
		return &ErrorBody{Code: e.Code, Message: e.Message}
	case *wferr.NoDebugSessionError:
		return &ErrorBody{Code: -32001, Message: e.Error()}
	case *wferr.InterpreterCompileError:
		return &ErrorBody{Code: -32002, Message: e.Error()}
	case *wferr.InterpreterRuntimeError:
		return &ErrorBody{Code: -32003, Message: e.Error()}
	case *wferr.InterpreterLoadError:
		return &ErrorBody{Code: -32004, Message: e.Error()}
	case *wferr.NotImplementedError:
		return &ErrorBody{Code: -32005, Message: e.Error()}
	case *wferr.NotFoundError:
		return &ErrorBody{Code: -32006, Message: e.Error()}
	default:
		return &ErrorBody{Code: -32000, Message: err.Error()}
	}
}
