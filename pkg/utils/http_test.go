package utils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONSuccess(rec, 200, []int{1, 2, 3}, &Meta{Count: 3, Cached: true})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.Count)
	assert.True(t, env.Meta.Cached)
	assert.Nil(t, env.Error)
}

func TestJSONSuccessOmitsEmptyMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONSuccess(rec, 201, map[string]string{"k": "v"}, nil)
	assert.NotContains(t, rec.Body.String(), "meta")
	assert.Equal(t, 201, rec.Code)
}

func TestJSONErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, 404, CodeNotFound, "conversation not found")

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeNotFound, env.Error.Code)
	assert.Equal(t, "conversation not found", env.Error.Message)
	assert.NotContains(t, rec.Body.String(), "data")
}

func TestGenMessageID(t *testing.T) {
	a := GenMessageID()
	b := GenMessageID()
	assert.True(t, strings.HasPrefix(a, "msg_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, len("msg_")+36)
}
