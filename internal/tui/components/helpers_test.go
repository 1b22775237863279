package components

import (
	"testing"
	"time"

	"github.com/MikeBiancalana/datefield/internal/config"
	"github.com/MikeBiancalana/datefield/internal/localize"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// Sunday
var fixedNow = time.Date(2025, time.January, 12, 9, 30, 0, 0, time.UTC)

func nowFunc() time.Time { return fixedNow }

func testBundle(t testing.TB) *localize.Bundle {
	t.Helper()
	cfg := config.Default()
	cfg.Location = "UTC"
	b, err := localize.NewBundle(cfg, nowFunc)
	require.NoError(t, err)
	return b
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func typeRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// collectMsgs runs cmd and any batched commands it returns.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T produced by cmd.
func findMsg[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	for _, msg := range collectMsgs(cmd) {
		if m, ok := msg.(T); ok {
			return m
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}
