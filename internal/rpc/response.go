package rpc

import "encoding/json"

// Clock is overridable by tests; defaults to wall-clock milliseconds.
var Clock = func() int64 { return nowMs() }

// Success builds a Response envelope carrying result and a timestamped meta block.
func Success(id any, result any) Response {
	env := Envelope{Result: result, Meta: EnvelopeMeta{TimestampMs: Clock()}}
	raw, err := json.Marshal(env)
	if err != nil {
		return Response{JSONRPC: "2.0", ID: id, Error: InternalError(err)}
	}
	return Response{JSONRPC: "2.0", ID: id, Result: raw}
}

// Fail builds an error Response from a Fault.
func Fail(id any, f *Fault) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: f.ToError()}
}

// FailStd builds an error Response with a standard JSON-RPC code.
func FailStd(id any, code int, message string) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message}}
}

// StdError is a standard JSON-RPC error (malformed params, unknown method),
// distinct from a domain Fault. Surfaces return one when request shape
// itself is invalid, before any domain logic runs.
type StdError struct {
	Code    int
	Message string
}

func (e *StdError) Error() string { return e.Message }

// InvalidParams builds a StdError for malformed/missing parameters.
func InvalidParams(message string) *StdError {
	return &StdError{Code: CodeInvalidParams, Message: message}
}

// Handle converts the result of a surface handler call into a Response: a
// *Fault becomes a domain error, a *StdError becomes its JSON-RPC code, and
// anything else becomes an internal error — the single conversion point
// every surface funnels through.
func Handle(id any, result any, err error) Response {
	if err == nil {
		return Success(id, result)
	}
	if f, ok := err.(*Fault); ok {
		return Fail(id, f)
	}
	if se, ok := err.(*StdError); ok {
		return FailStd(id, se.Code, se.Message)
	}
	return Response{JSONRPC: "2.0", ID: id, Error: InternalError(err)}
}
