// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsage/soundsage/api"
	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/test/datagen"
	"github.com/soundsage/soundsage/test/testchain"
	"github.com/soundsage/soundsage/watcher"
)

func get(t *testing.T, url string) (string, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body), res.StatusCode
}

func TestStartServers(t *testing.T) {
	chain := testchain.New(31337)
	chain.Install(datagen.DevAccounts()[0].Address)
	client, err := dapp.New(chain, chain.Network(), nil)
	require.NoError(t, err)
	w, err := watcher.New(client, nil, watcher.Config{})
	require.NoError(t, err)

	apiURL, closeAPI, err := StartAPIServer("127.0.0.1:0", w, api.Options{AllowedOrigins: "*"})
	require.NoError(t, err)
	defer closeAPI()

	body, code := get(t, apiURL+"proposals")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]\n", body)

	var level slog.LevelVar
	var apiLogs atomic.Bool
	adminURL, closeAdmin, err := StartAdminServer("127.0.0.1:0", &level, &apiLogs, w, time.Minute)
	require.NoError(t, err)
	defer closeAdmin()

	// no poll has happened yet
	_, code = get(t, adminURL+"/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	metricsURL, closeMetrics, err := StartMetricsServer("127.0.0.1:0")
	require.NoError(t, err)
	defer closeMetrics()

	_, code = get(t, metricsURL)
	assert.Equal(t, http.StatusNotFound, code)

	body, code = get(t, strings.TrimSuffix(metricsURL, "/metrics")+"/debug")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"only /metrics is served here"}`, body)
}

func TestStopAPIServer(t *testing.T) {
	chain := testchain.New(31337)
	chain.Install(datagen.DevAccounts()[0].Address)
	client, err := dapp.New(chain, chain.Network(), nil)
	require.NoError(t, err)
	w, err := watcher.New(client, nil, watcher.Config{})
	require.NoError(t, err)

	apiURL, closeAPI, err := StartAPIServer("127.0.0.1:0", w, api.Options{AllowedOrigins: "*"})
	require.NoError(t, err)
	closeAPI()

	_, err = http.Get(apiURL + "proposals") //#nosec G107
	assert.Error(t, err)
}

func TestListenError(t *testing.T) {
	_, _, err := StartMetricsServer("256.0.0.1:0")
	assert.ErrorContains(t, err, "listen metrics API addr")

	_, _, err = StartAdminServer("256.0.0.1:0", nil, nil, nil, time.Minute)
	assert.ErrorContains(t, err, "listen admin API addr")
}
