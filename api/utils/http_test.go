// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	for _, tt := range []struct {
		err    error
		status int
		body   string
	}{
		{BadRequest(errors.New("title is required")), http.StatusBadRequest, `{"error":"title is required"}`},
		{Forbidden(errors.New("wallet not connected")), http.StatusForbidden, `{"error":"wallet not connected"}`},
		{errors.WithMessage(NotFound(errors.New("gone")), "lookup"), http.StatusNotFound, `{"error":"lookup: gone"}`},
		{errors.New("boom"), http.StatusInternalServerError, `{"error":"boom"}`},
	} {
		rec := httptest.NewRecorder()
		WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error { return tt.err })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tt.status, rec.Code)
		assert.JSONEq(t, tt.body, rec.Body.String())
		assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	}

	rec := httptest.NewRecorder()
	WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error { return WriteJSON(w, M{"ok": true}) })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"title":"x"}`), &v))
	assert.Equal(t, "x", v.Title)
	assert.Error(t, ParseJSON(strings.NewReader(`{"title":"x","extra":1}`), &v))
}
