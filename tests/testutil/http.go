// Package testutil holds helpers shared by FinTrack tests: API envelope
// decoding, JSON request bodies and a domain event recorder.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/interfaces/http/dto"
)

// Envelope is dto.Response with Data left undecoded
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// DecodeEnvelope parses the recorded body. An empty body yields a zero Envelope.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if w.Body.Len() == 0 {
		return env
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// DataAs unmarshals the envelope data into T
func DataAs[T any](t *testing.T, env Envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

// DataMap decodes a single-object payload
func DataMap(t *testing.T, env Envelope) map[string]any {
	t.Helper()
	return DataAs[map[string]any](t, env)
}

// DataList decodes a list payload
func DataList(t *testing.T, env Envelope) []map[string]any {
	t.Helper()
	return DataAs[[]map[string]any](t, env)
}

// RequireDecimal compares a money value rendered as a JSON string, ignoring
// trailing zeros
func RequireDecimal(t *testing.T, want string, got any) {
	t.Helper()
	s, ok := got.(string)
	require.True(t, ok, "expected decimal string, got %T", got)
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(s)), "want %s, got %s", want, s)
}

// ToJSONReader encodes v as a request body. A nil v gives an empty body.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	if v != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}
	return &buf
}
