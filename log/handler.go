// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// levelHandler drops records below a level that can be changed at runtime.
type levelHandler struct {
	lvl  *slog.LevelVar
	next slog.Handler
}

// NewLevelHandler wraps h so that only records at or above lvl are emitted.
func NewLevelHandler(lvl *slog.LevelVar, h slog.Handler) slog.Handler {
	return &levelHandler{lvl: lvl, next: h}
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.lvl.Level() && h.next.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{lvl: h.lvl, next: h.next.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{lvl: h.lvl, next: h.next.WithGroup(name)}
}

// NewTerminalHandlerWithLevel returns a human readable handler filtered by lvl.
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) slog.Handler {
	return NewLevelHandler(lvl, ethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor))
}

// JSONHandlerWithLevel returns a handler which prints records in JSON format, filtered by lvl.
func JSONHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return NewLevelHandler(lvl, ethlog.JSONHandlerWithLevel(wr, LevelTrace))
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}
