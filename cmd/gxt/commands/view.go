// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/gxt-foundation/gxt/cmd/gxt/cli"
	"github.com/gxt-foundation/gxt/lib/key"
	"github.com/gxt-foundation/gxt/lib/token"
)

func viewCommand() *cli.Command {
	var keyPath string
	return &cli.Command{
		Name:    "view",
		Summary: "inspect a token interactively",
		Usage:   "gxt view [--key <key-file>] [<token-file>]",
		Description: "Verifies a token and renders its envelope in the terminal.\n" +
			"With --key, message tokens can be decrypted in place (press d).\n" +
			"Reads stdin when no file is given.",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("view", pflag.ContinueOnError)
			flags.StringVarP(&keyPath, "key", "k", "", "key file for decrypting message tokens")
			return flags
		},
		Run: func(args []string) error {
			raw, err := readTokenArg(args)
			if err != nil {
				return err
			}

			envelope, err := token.Verify(raw)
			if err != nil {
				return fmt.Errorf("verifying token: %w", err)
			}

			model := viewerModel{raw: raw, envelope: envelope}
			if keyPath != "" {
				secret, err := readKey(keyPath)
				if err != nil {
					return err
				}
				model.secret = &secret
			}

			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// viewerModel is the bubbletea model for the token inspector: one
// static envelope pane plus an optional decrypt toggle.
type viewerModel struct {
	raw      string
	envelope *token.Envelope

	// secret enables the decrypt toggle for message tokens.
	secret *key.Secret

	// decrypted replaces the envelope display while toggled on.
	decrypted  *token.Envelope
	decryptErr error

	showDecrypted bool
	width         int
}

var (
	viewerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	viewerLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Width(18)
	viewerValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	viewerErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	viewerHelpStyle  = lipgloss.NewStyle().Faint(true)
	viewerPaneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m viewerModel) Init() tea.Cmd { return nil }

func (m viewerModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width

	case tea.KeyMsg:
		switch message.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "d":
			if m.secret == nil || m.envelope.Kind != token.KindMessage {
				break
			}
			if m.showDecrypted {
				m.showDecrypted = false
				break
			}
			if m.decrypted == nil && m.decryptErr == nil {
				m.decrypted, m.decryptErr = token.Decrypt(m.raw, *m.secret)
			}
			m.showDecrypted = true
		}
	}
	return m, nil
}

func (m viewerModel) View() string {
	envelope := m.envelope
	title := "GXT token"
	if m.showDecrypted {
		title = "GXT token (decrypted)"
		if m.decrypted != nil {
			envelope = m.decrypted
		}
	}

	rows := []string{viewerTitleStyle.Render(title), ""}
	if m.showDecrypted && m.decryptErr != nil {
		rows = append(rows, viewerErrorStyle.Render("decrypt failed: "+m.decryptErr.Error()), "")
	}

	field := func(label, value string) {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			viewerLabelStyle.Render(label),
			viewerValueStyle.Render(value),
		))
	}

	field("version", fmt.Sprintf("%d", envelope.Version))
	field("kind", string(envelope.Kind))
	field("verification key", envelope.VerificationKey)
	field("encryption key", envelope.EncryptionKey)
	if envelope.Parent != nil {
		field("parent", *envelope.Parent)
	} else {
		field("parent", "—")
	}
	field("id", envelope.ID)
	field("signature", envelope.Signature)

	payload, err := json.MarshalIndent(envelope.Payload, "", "  ")
	if err != nil {
		payload = []byte(fmt.Sprintf("<unrenderable: %v>", err))
	}
	rows = append(rows, "", viewerLabelStyle.Render("payload"), viewerValueStyle.Render(string(payload)))

	help := "q quit"
	if m.secret != nil && m.envelope.Kind == token.KindMessage {
		help = "d toggle decrypt · " + help
	}
	rows = append(rows, "", viewerHelpStyle.Render(help))

	pane := viewerPaneStyle
	if m.width > 4 {
		pane = pane.Width(m.width - 2)
	}
	return pane.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
