// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tui is the terminal dashboard: the balance header, the proposal
// list with voting and the proposal form.
package tui

import (
	"context"
	"math/big"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"

	"github.com/soundsage/soundsage/dapp"
	"github.com/soundsage/soundsage/log"
	"github.com/soundsage/soundsage/network"
	"github.com/soundsage/soundsage/watcher"
)

var logger = log.WithContext("pkg", "tui")

// Source delivers snapshots. *watcher.Watcher satisfies it.
type Source interface {
	Subscribe() (<-chan *watcher.Snapshot, func())
	Refresh()
}

// Actions are the writes the dashboard can trigger. *dapp.Client satisfies it.
type Actions interface {
	Vote(ctx context.Context, id *big.Int) (common.Hash, error)
	CreateProposal(ctx context.Context, in dapp.ProposalInput) (common.Hash, error)
}

type (
	snapshotMsg struct{ snap *watcher.Snapshot }
	sourceClosedMsg struct{}
	voteDoneMsg     struct {
		id   *big.Int
		hash common.Hash
		err  error
	}
	proposalDoneMsg struct {
		hash common.Hash
		err  error
	}
)

const refreshingText = "Refreshing..."

const (
	fieldTitle = iota
	fieldArtist
	fieldSongLink
	fieldCount
)

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx     context.Context
	source  Source
	actions Actions
	net     *network.Network
	styles  Styles

	snapshots   <-chan *watcher.Snapshot
	unsubscribe func()

	snap   *watcher.Snapshot
	cursor int

	voting     *big.Int
	formOpen   bool
	submitting bool
	inputs     []textinput.Model
	focus      int

	spinner spinner.Model
	status  string
	err     string
	width   int
}

// New creates the dashboard model. It subscribes to source right away, the
// subscription is released when the program quits.
func New(ctx context.Context, source Source, actions Actions, net *network.Network) *Model {
	snapshots, unsubscribe := source.Subscribe()

	styles := DefaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Busy

	return &Model{
		ctx:         ctx,
		source:      source,
		actions:     actions,
		net:         net,
		styles:      styles,
		snapshots:   snapshots,
		unsubscribe: unsubscribe,
		spinner:     sp,
		inputs:      newInputs(),
	}
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 48
		ti.Prompt = "│ "
		inputs[i] = ti
	}
	inputs[fieldSongLink].Placeholder = "Spotify or YouTube link"
	return inputs
}

func (m *Model) Init() tea.Cmd {
	return m.waitForSnapshot()
}

func (m *Model) waitForSnapshot() tea.Cmd {
	ch := m.snapshots
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return sourceClosedMsg{}
		}
		return snapshotMsg{snap}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		if m.status == refreshingText {
			m.status = ""
		}
		if n := len(m.snap.Proposals); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, m.waitForSnapshot()

	case sourceClosedMsg:
		m.err = "updates stopped"
		return m, nil

	case voteDoneMsg:
		m.voting = nil
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.status = "Voted on proposal #" + msg.id.String() + " in " + msg.hash.Hex()
		m.source.Refresh()
		return m, nil

	case proposalDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.status = "Proposal submitted in " + msg.hash.Hex()
		m.closeForm()
		m.source.Refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.formOpen {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

func (m *Model) busy() bool {
	return m.voting != nil || m.submitting
}

func (m *Model) proposals() []dapp.Proposal {
	if m.snap == nil {
		return nil
	}
	return m.snap.Proposals
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.proposals())-1 {
			m.cursor++
		}
	case "r":
		m.status = refreshingText
		m.source.Refresh()
	case "n":
		m.openForm()
		return m, textinput.Blink
	case "v":
		list := m.proposals()
		if m.busy() || len(list) == 0 {
			return m, nil
		}
		id := new(big.Int).Set(list[m.cursor].ID)
		m.voting = id
		m.status = ""
		return m, tea.Batch(m.vote(id), m.spinner.Tick)
	}
	return m, nil
}

func (m *Model) vote(id *big.Int) tea.Cmd {
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		hash, err := actions.Vote(ctx, id)
		if err != nil {
			logger.Debug("vote failed", "proposal", id, "err", err)
		}
		return voteDoneMsg{id: id, hash: hash, err: err}
	}
}

func (m *Model) openForm() {
	m.formOpen = true
	m.err = ""
	m.focus = fieldTitle
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[fieldTitle].Focus()
}

func (m *Model) closeForm() {
	m.formOpen = false
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil
	case "enter":
		if m.focus < fieldSongLink {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	in := dapp.ProposalInput{
		Title:    m.inputs[fieldTitle].Value(),
		Artist:   m.inputs[fieldArtist].Value(),
		SongLink: m.inputs[fieldSongLink].Value(),
	}.Normalize()
	if err := in.Validate(); err != nil {
		m.err = err.Error()
		return nil
	}
	m.err = ""
	m.submitting = true

	ctx, actions := m.ctx, m.actions
	return tea.Batch(func() tea.Msg {
		hash, err := actions.CreateProposal(ctx, in)
		return proposalDoneMsg{hash: hash, err: err}
	}, m.spinner.Tick)
}
