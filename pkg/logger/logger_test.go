package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeHeadersRedactsSensitive(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/conversations", nil)
	r.Header.Set("Authorization", "Bearer secret")
	r.Header.Set("X-API-Key", "ck_1")
	r.Header.Set("Accept", "application/json")

	s := SafeHeaders(r)
	assert.NotContains(t, s, "secret")
	assert.NotContains(t, s, "ck_1")
	assert.Contains(t, s, "<redacted>")
	assert.Contains(t, s, "application/json")
}

func TestNilLoggerIsSafe(t *testing.T) {
	orig := Log
	Log = nil
	defer func() { Log = orig }()

	// must not panic before Init runs
	Debug("d")
	Info("i", "k", "v")
	Warn("w")
	Error("e")
	LogRequest(httptest.NewRequest("GET", "/", nil))
}
