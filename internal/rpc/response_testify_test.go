package rpc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSuccessBuildsResultEnvelope(t *testing.T) {
	resp := Handle(1, map[string]any{"ok": true}, nil)

	require.Nil(t, resp.Error)
	var env Envelope
	require.NoError(t, json.Unmarshal(resp.Result, &env))
	assert.Equal(t, map[string]any{"ok": true}, env.Result)
	assert.NotZero(t, env.Meta.TimestampMs)
}

func TestHandleFaultBecomesDomainError(t *testing.T) {
	resp := Handle(2, nil, &Fault{Code: ErrObjectNotFound, Message: "widget#3 not found"})

	require.NotNil(t, resp.Error)
	assert.Equal(t, "widget#3 not found", resp.Error.Message)
	assert.Equal(t, ErrObjectNotFound, resp.Error.Data.(map[string]any)["code"])
}

func TestHandleStdErrorKeepsItsCode(t *testing.T) {
	resp := Handle(3, nil, InvalidParams("missing id"))

	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidParams, resp.Error.Code)
	assert.Equal(t, "missing id", resp.Error.Message)
}

func TestHandleUnrecognizedErrorBecomesInternalError(t *testing.T) {
	resp := Handle(4, nil, errors.New("boom"))

	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInternalError, resp.Error.Code)
}
