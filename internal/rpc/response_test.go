package rpc

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestHandleSuccess(t *testing.T) {
	resp := Handle(1, map[string]any{"ok": true}, nil)
	if resp.Error != nil {
		t.Fatalf("Error = %v, want nil", resp.Error)
	}
	var env Envelope
	if err := json.Unmarshal(resp.Result, &env); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if env.Meta.TimestampMs == 0 {
		t.Errorf("Meta.TimestampMs = 0, want nonzero")
	}
}

func TestHandleFault(t *testing.T) {
	f := NewFault(ErrPropertyNotFound, "no such property", map[string]any{"property": "foo"})
	resp := Handle(2, nil, f)
	if resp.Error == nil {
		t.Fatal("Error = nil, want non-nil")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Code = %d, want -32000", resp.Error.Code)
	}
	if resp.Error.Data.(map[string]any)["code"] != ErrPropertyNotFound {
		t.Errorf("Data[code] = %v, want %v", resp.Error.Data, ErrPropertyNotFound)
	}
}

func TestHandleStdError(t *testing.T) {
	resp := Handle(3, nil, InvalidParams("missing id"))
	if resp.Error == nil {
		t.Fatal("Error = nil, want non-nil")
	}
	if resp.Error.Code != CodeInvalidParams {
		t.Errorf("Code = %d, want %d", resp.Error.Code, CodeInvalidParams)
	}
}

func TestHandleUnknownErrorBecomesInternal(t *testing.T) {
	resp := Handle(4, nil, errors.New("boom"))
	if resp.Error == nil {
		t.Fatal("Error = nil, want non-nil")
	}
	if resp.Error.Code != CodeInternalError {
		t.Errorf("Code = %d, want %d", resp.Error.Code, CodeInternalError)
	}
}
