// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#6B7280")
	colorError   = lipgloss.Color("#E53935")
	colorBorder  = lipgloss.Color("#2A3850")
	colorLink    = lipgloss.Color("#2196F3")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles groups the lipgloss styles of the dashboard.
type Styles struct {
	Title    lipgloss.Style
	Balance  lipgloss.Style
	Account  lipgloss.Style
	Section  lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Link     lipgloss.Style
	Button   lipgloss.Style
	Busy     lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginBottom(1)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Balance:  lipgloss.NewStyle().Bold(true),
		Account:  lipgloss.NewStyle().Foreground(colorMuted),
		Section:  lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		Card:     card,
		Selected: card.BorderForeground(colorAccent),
		Label:    lipgloss.NewStyle().Foreground(colorMuted),
		Link:     lipgloss.NewStyle().Foreground(colorLink).Underline(true),
		Button:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Busy:     lipgloss.NewStyle().Foreground(colorWarning),
		Error:    lipgloss.NewStyle().Foreground(colorError),
		Status:   lipgloss.NewStyle().Foreground(colorAccent),
		Help:     lipgloss.NewStyle().Foreground(colorMuted),
	}
}
