// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gxt-foundation/gxt/lib/key"
	"github.com/gxt-foundation/gxt/lib/token"
)

func TestRootWiresAllSubcommands(t *testing.T) {
	root := Root()
	want := []string{"keygen", "id", "msg", "verify", "decrypt", "serve", "view"}

	var got []string
	for _, sub := range root.Subcommands {
		got = append(got, sub.Name)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("subcommands = %v, want %v", got, want)
	}
}

func TestReadPayloadFlagValue(t *testing.T) {
	payload, err := readPayload(`{"name":"Bob", /* comment */ }`)
	if err != nil {
		t.Fatalf("readPayload: %v", err)
	}
	want := map[string]any{"name": "Bob"}
	if !reflect.DeepEqual(payload, want) {
		t.Fatalf("payload = %#v, want %#v", payload, want)
	}
}

func TestReadKeyRoundtrip(t *testing.T) {
	secret, err := key.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	bundle, err := secret.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	path := filepath.Join(t.TempDir(), "key.gxk")
	if err := os.WriteFile(path, []byte(bundle+"\n"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := readKey(path)
	if err != nil {
		t.Fatalf("readKey: %v", err)
	}
	if loaded != secret {
		t.Fatal("readKey returned a different secret")
	}
}

func TestWriteOutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gxi")
	if err := writeOut("gxi:abc", path); err != nil {
		t.Fatalf("writeOut: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "gxi:abc" {
		t.Fatalf("content = %q, want token without trailing newline", content)
	}
}

func testMessage(t *testing.T) (raw string, recipient key.Secret) {
	t.Helper()
	sender, err := key.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if recipient, err = key.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	card, err := token.MakeIDCard(recipient, nil)
	if err != nil {
		t.Fatalf("MakeIDCard: %v", err)
	}
	raw, err = token.MakeMessage(sender, card, map[string]any{"hello": "world"}, nil)
	if err != nil {
		t.Fatalf("MakeMessage: %v", err)
	}
	return raw, recipient
}

func TestViewerDecryptToggle(t *testing.T) {
	raw, recipient := testMessage(t)
	envelope, err := token.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	model := viewerModel{raw: raw, envelope: envelope, secret: &recipient}

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	model = updated.(viewerModel)
	if !model.showDecrypted {
		t.Fatal("d did not toggle decryption on")
	}
	if model.decryptErr != nil {
		t.Fatalf("decrypt error: %v", model.decryptErr)
	}
	if !strings.Contains(model.View(), "hello") {
		t.Error("decrypted view does not show the payload")
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	model = updated.(viewerModel)
	if model.showDecrypted {
		t.Fatal("d did not toggle decryption back off")
	}
}

func TestViewerQuitKeys(t *testing.T) {
	raw, _ := testMessage(t)
	envelope, err := token.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	model := viewerModel{raw: raw, envelope: envelope}

	_, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if command == nil {
		t.Fatal("q did not produce a quit command")
	}
}
