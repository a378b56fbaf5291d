package report

import (
	"bytes"
	"errors"
	"testing"

	"osuisetup/internal/types"

	"github.com/stretchr/testify/assert"
)

func plain() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf, &buf, Options{Service: "opensnitch", TUICommand: "opensnitch-tui"}), &buf
}

func TestSuccess(t *testing.T) {
	p, buf := plain()
	p.Success(&types.PatchResult{
		ConfigPath: "/etc/opensnitchd/default-config.json",
		BackupPath: "/etc/opensnitchd/default-config.json.backup.20240309_140507",
		Field:      "Server.Address",
		Previous:   "unix:///tmp/osui.sock.old",
		Current:    "unix:///tmp/osui.sock",
		Editor:     "native",
		Changed:    true,
	})

	out := buf.String()
	assert.Contains(t, out, "Daemon configured to use the TUI socket")
	assert.Contains(t, out, "unix:///tmp/osui.sock.old")
	assert.Contains(t, out, "listens on unix:///tmp/osui.sock:")
	assert.Contains(t, out, "sudo opensnitch-tui")
	assert.Contains(t, out, "sudo systemctl restart opensnitch")
	assert.Contains(t, out, "sudo cp /etc/opensnitchd/default-config.json.backup.20240309_140507 /etc/opensnitchd/default-config.json")
	assert.NotContains(t, out, "text substitution")
	assert.NotContains(t, out, "\x1b[")
}

func TestSuccessUnchangedLexical(t *testing.T) {
	p, buf := plain()
	p.Success(&types.PatchResult{Field: "Server.Address", Current: "unix:///tmp/osui.sock", Editor: "lexical"})

	out := buf.String()
	assert.Contains(t, out, "already configured")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "text substitution")
}

func TestBackups(t *testing.T) {
	p, buf := plain()
	p.Backups("/etc/app.json", nil)
	assert.Contains(t, buf.String(), "No backups of /etc/app.json")

	buf.Reset()
	p.Backups("/etc/app.json", []string{"/etc/app.json.backup.20240309_140507"})
	assert.Contains(t, buf.String(), "Backups of /etc/app.json (1)")
	assert.Contains(t, buf.String(), "  /etc/app.json.backup.20240309_140507")
}

func TestRestored(t *testing.T) {
	p, buf := plain()
	p.Restored("/etc/app.json", "/etc/app.json.backup.1", "")
	assert.Contains(t, buf.String(), "Config restored")
	assert.NotContains(t, buf.String(), "Saved")

}

func TestFailureGoesToErrorWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, Options{Service: "opensnitch", TUICommand: "opensnitch-tui"})

	p.Failure(errors.New("config file not found: /etc/app.json"))
	assert.Empty(t, out.String())
	assert.Equal(t, "Error: config file not found: /etc/app.json\n", errOut.String())
}

func TestColor(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, &buf, Options{Color: true, Service: "opensnitch", TUICommand: "opensnitch-tui"}).
		Backups("/etc/app.json", []string{"/etc/app.json.backup.20240309_140507"})
	assert.Contains(t, buf.String(), "\x1b[")
}
