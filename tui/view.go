// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"

	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/units"
)

const (
	emptyText    = "No proposals yet. Be the first to propose a song!"
	loadingText  = "Loading proposals..."
	readOnlyText = "Read-only: pass --private-key, --key-file or --keystore to vote and propose"
)

var fieldLabels = [fieldCount]string{"Song Title:", "Artist:", "Song Link:"}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.formOpen {
		b.WriteString(m.viewForm())
	} else {
		b.WriteString(m.viewList())
	}

	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewHeader() string {
	left := m.styles.Title.Render("SoundSage")

	var right string
	switch {
	case m.snap == nil:
		right = m.styles.Account.Render("connecting...")
	case m.snap.Account == (common.Address{}):
		right = m.styles.Account.Render("wallet not connected")
	default:
		right = m.styles.Balance.Render(m.snap.Balance+" GROOVE") + "  " +
			m.styles.Account.Render(units.ShortAddress(m.snap.Account))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
}

func (m *Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Song Proposals"))
	b.WriteString("\n")

	if m.snap == nil {
		b.WriteString(loadingText + "\n")
		return b.String()
	}
	if m.snap.Account == (common.Address{}) {
		b.WriteString(m.styles.Help.Render(readOnlyText))
		b.WriteString("\n")
	}
	if len(m.snap.Proposals) == 0 {
		b.WriteString(emptyText + "\n")
		return b.String()
	}
	for i, p := range m.snap.Proposals {
		style := m.styles.Card
		if i == m.cursor {
			style = m.styles.Selected
		}
		b.WriteString(style.Render(m.viewProposal(p, i == m.cursor)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewProposal(p dapp.Proposal, selected bool) string {
	lines := []string{
		m.styles.Balance.Render(p.Title),
		m.styles.Label.Render("Artist: ") + p.Artist,
		m.styles.Label.Render("Proposed by: ") + units.ShortAddress(p.Proposer),
		m.styles.Label.Render("Votes: ") + p.VoteCount.String(),
		m.styles.Label.Render("Listen to Song: ") + m.styles.Link.Render(p.SongLink),
	}
	switch {
	case m.voting != nil && m.voting.Cmp(p.ID) == 0:
		lines = append(lines, m.spinner.View()+m.styles.Busy.Render("Voting..."))
	case selected:
		lines = append(lines, m.styles.Button.Render("[v] Vote"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewForm() string {
	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Submit New Song Proposal"))
	b.WriteString("\n")
	for i, in := range m.inputs {
		b.WriteString(m.styles.Label.Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString(m.spinner.View() + m.styles.Busy.Render("Submitting..."))
	} else {
		b.WriteString(m.styles.Button.Render("[enter] Submit Proposal"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewFooter() string {
	help := "↑/↓ select • v vote • n new proposal • r refresh • q quit"
	if m.formOpen {
		help = "tab next field • enter submit • esc cancel"
	}
	footer := m.styles.Help.Render(help)
	if m.net != nil {
		footer += "\n" + m.styles.Help.Render("Built on "+m.net.Name)
	}
	return footer
}
