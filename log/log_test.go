// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useBuffer(t *testing.T, lvl *slog.LevelVar) *bytes.Buffer {
	var buf bytes.Buffer
	old := Root()
	SetDefault(NewLogger(JSONHandlerWithLevel(&buf, lvl)))
	t.Cleanup(func() { SetDefault(old) })
	return &buf
}

func TestWithContextFollowsDefault(t *testing.T) {
	logger := WithContext("pkg", "test")

	var lvl slog.LevelVar
	lvl.Set(LevelInfo)
	buf := useBuffer(t, &lvl)

	logger.Info("hello", "n", 1)
	require.Contains(t, buf.String(), `"pkg":"test"`)
	require.Contains(t, buf.String(), `"msg":"hello"`)

	child := logger.With("sub", "x")
	child.Warn("child")
	assert.Contains(t, buf.String(), `"sub":"x"`)
}

func TestLevelVarFiltering(t *testing.T) {
	var lvl slog.LevelVar
	lvl.Set(LevelWarn)
	buf := useBuffer(t, &lvl)

	logger := WithContext("pkg", "filter")
	logger.Info("dropped")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(context.Background(), LevelInfo))

	lvl.Set(LevelDebug)
	logger.Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestFromLegacyLevel(t *testing.T) {
	cases := map[int]slog.Level{
		-1: LevelCrit,
		0:  LevelCrit,
		1:  LevelError,
		2:  LevelWarn,
		3:  LevelInfo,
		4:  LevelDebug,
		5:  LevelTrace,
		9:  LevelTrace,
	}
	for in, want := range cases {
		assert.Equal(t, want, FromLegacyLevel(in), "legacy level %d", in)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "trace", LevelName(LevelTrace))
	assert.Equal(t, "debug", LevelName(LevelDebug))
	assert.Equal(t, "info", LevelName(LevelInfo))
	assert.Equal(t, "warn", LevelName(LevelWarn))
	assert.Equal(t, "error", LevelName(LevelError))
	assert.Equal(t, "crit", LevelName(LevelCrit))
}
