package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Run("writes body and headers", func(t *testing.T) {
		rec := httptest.NewRecorder()

		n, err := WriteJSON(rec, map[string]string{"status": "ok"}, http.StatusCreated)
		require.NoError(t, err)
		assert.Positive(t, n)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("nil data", func(t *testing.T) {
		rec := httptest.NewRecorder()

		_, err := WriteJSON(rec, nil, http.StatusOK)
		require.NoError(t, err)
		assert.Equal(t, "null", rec.Body.String())
	})

	t.Run("unmarshalable data", func(t *testing.T) {
		rec := httptest.NewRecorder()

		_, err := WriteJSON(rec, func() {}, http.StatusOK)
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
