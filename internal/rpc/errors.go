package rpc

import "fmt"

// Standard JSON-RPC 2.0 codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Domain error codes, grouped by layer. These are carried in
// Error.Data["code"] as a stable CamelCase tag, next to the human-readable
// Error.Message, so clients can branch on it without parsing Message.
const (
	// object layer
	ErrObjectNotFound       = "ObjectNotFound"
	ErrWidgetNotVisible     = "WidgetNotVisible"
	ErrPropertyNotFound     = "PropertyNotFound"
	ErrNotReadable          = "NotReadable"
	ErrReadOnly             = "ReadOnly"
	ErrConversionFailed     = "ConversionFailed"
	ErrMethodNotFound       = "MethodNotFound"
	ErrInvocationFailed     = "InvocationFailed"
	ErrSignalNotFound       = "SignalNotFound"
	ErrSubscriptionNotFound = "SubscriptionNotFound"

	// coordinate layer
	ErrNoActiveWindow       = "NoActiveWindow"
	ErrCoordinateOutOfBounds = "CoordinateOutOfBounds"
	ErrNoFocusedWidget      = "NoFocusedWidget"
	ErrKeyParseError        = "KeyParseError"

	// accessibility layer
	ErrRefNotFound          = "RefNotFound"
	ErrRefStale             = "RefStale"
	ErrFormInputUnsupported = "FormInputUnsupported"
	ErrTreeTooLarge         = "TreeTooLarge"
	ErrFindTooManyResults   = "FindTooManyResults"
	ErrNavigateInvalid      = "NavigateInvalid"
	ErrConsoleNotAvailable  = "ConsoleNotAvailable"

	// QML/model layer
	ErrQmlNotAvailable       = "QmlNotAvailable"
	ErrQmlContextNotFound    = "QmlContextNotFound"
	ErrNotQmlItem            = "NotQmlItem"
	ErrModelNotFound         = "ModelNotFound"
	ErrModelIndexOutOfBounds = "ModelIndexOutOfBounds"
	ErrRoleNotFound          = "RoleNotFound"
	ErrNotAModel             = "NotAModel"
)

// Fault is a structured domain error. Surfaces catch Fault at the dispatch
// boundary and convert it to a JSON-RPC error object; any other panic/error becomes CodeInternalError
// with the message preserved, and construction/destruction-path faults are
// logged-and-suppressed rather than propagated.
type Fault struct {
	Code    string
	Message string
	Data    map[string]any
}

func (f *Fault) Error() string { return fmt.Sprintf("%s: %s", f.Code, f.Message) }

// NewFault builds a Fault with optional structured data.
func NewFault(code, message string, data map[string]any) *Fault {
	return &Fault{Code: code, Message: message, Data: data}
}

// ToError converts a Fault to a JSON-RPC error object. Domain faults use
// code CodeInternalError's sibling -32000 (server error) with the domain
// code carried in Data so clients never need to parse Message.
func (f *Fault) ToError() *Error {
	data := map[string]any{"code": f.Code}
	for k, v := range f.Data {
		data[k] = v
	}
	return &Error{Code: -32000, Message: f.Message, Data: data}
}

// InternalError wraps an unexpected error as a JSON-RPC internal error,
// preserving the original message.
func InternalError(err error) *Error {
	return &Error{Code: CodeInternalError, Message: "internal error: " + err.Error()}
}
