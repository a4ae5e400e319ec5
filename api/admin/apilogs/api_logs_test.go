// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package apilogs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPILogsHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       *LogStatus
		startValue bool
		want       bool
	}{
		{name: "enable", method: http.MethodPost, body: &LogStatus{Enabled: true}, startValue: false, want: true},
		{name: "disable", method: http.MethodPost, body: &LogStatus{Enabled: false}, startValue: true, want: false},
		{name: "get", method: http.MethodGet, startValue: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var enabled atomic.Bool
			enabled.Store(tt.startValue)

			var body []byte
			if tt.body != nil {
				var err error
				body, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}

			router := mux.NewRouter()
			New(&enabled).Mount(router, "/admin/apilogs")
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, "/admin/apilogs", bytes.NewReader(body)))

			require.Equal(t, http.StatusOK, rr.Code)
			var status LogStatus
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
			assert.Equal(t, tt.want, status.Enabled)
			assert.Equal(t, tt.want, enabled.Load())
		})
	}
}

func TestAPILogsRejectsUnknownFields(t *testing.T) {
	var enabled atomic.Bool
	router := mux.NewRouter()
	New(&enabled).Mount(router, "/admin/apilogs")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/apilogs", strings.NewReader(`{"enabled":true,"level":"debug"}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, enabled.Load())
}
