// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/network"
)

// Run shows the dashboard until the user quits or ctx is done.
func Run(ctx context.Context, source Source, actions Actions, net *network.Network) error {
	m := New(ctx, source, actions, net)
	defer func() {
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
	}()

	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
