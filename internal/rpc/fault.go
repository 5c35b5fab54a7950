package rpc

import "strings"

// WrapTagged converts an error produced by the inner layers (internal/inspect,
// internal/registry, internal/signals, ...) into a *Fault. Those packages
// stay RPC-agnostic and return plain errors whose message is prefixed
// "Code: detail"; this is the single place that tag gets turned into a
// structured domain Fault. Unrecognized
// prefixes become CodeInternalError via Handle's fallback, not a Fault.
func WrapTagged(err error, data map[string]any) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	code, rest, ok := splitTag(msg)
	if !ok {
		return err
	}
	return &Fault{Code: code, Message: rest, Data: data}
}

// splitTag extracts a leading "Tag: " prefix that names one of the domain
// error codes declared in errors.go.
func splitTag(msg string) (tag, rest string, ok bool) {
	i := strings.Index(msg, ": ")
	if i < 0 {
		return "", "", false
	}
	candidate := msg[:i]
	if !knownTags[candidate] {
		return "", "", false
	}
	return candidate, msg[i+2:], true
}

var knownTags = map[string]bool{
	ErrObjectNotFound: true, ErrWidgetNotVisible: true, ErrPropertyNotFound: true,
	ErrNotReadable: true, ErrReadOnly: true, ErrConversionFailed: true,
	ErrMethodNotFound: true, ErrInvocationFailed: true, ErrSignalNotFound: true,
	ErrSubscriptionNotFound: true,
	ErrNoActiveWindow: true, ErrCoordinateOutOfBounds: true, ErrNoFocusedWidget: true,
	ErrKeyParseError: true,
	ErrRefNotFound: true, ErrRefStale: true, ErrFormInputUnsupported: true,
	ErrTreeTooLarge: true, ErrFindTooManyResults: true, ErrNavigateInvalid: true,
	ErrConsoleNotAvailable: true,
	ErrQmlNotAvailable: true, ErrQmlContextNotFound: true, ErrNotQmlItem: true,
	ErrModelNotFound: true, ErrModelIndexOutOfBounds: true, ErrRoleNotFound: true,
	ErrNotAModel: true,
	"InvalidKeyCombo":      true,
	"InvalidRegion":        true,
	"CaptureUnsupported":   true,
	"CaptureFailed":        true,
	"HitTestUnsupported":   true,
	"OutOfBounds":          true,
	"GeometryUnavailable":  true,
	"AccessibilityUnsupported": true,
	"AccessibleNodeNotFound":   true,
	"ActionFailed":             true,
	"IndexOutOfRange":          true,
}
