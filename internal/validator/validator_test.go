package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketURI(t *testing.T) {
	v := New()

	valid := []string{
		"unix:///tmp/osui.sock",
		"unix:/tmp/osui.sock",
		"unix:osui.sock",
		"127.0.0.1:50051",
		"[::1]:50051",
		"localhost:50051",
	}
	for _, addr := range valid {
		assert.NoError(t, v.Var(addr, "socketuri"), addr)
	}

	invalid := []string{
		"",
		"unix://",
		"unix://tmp/osui.sock",
		"unix:",
		"127.0.0.1",
		`unix:///tmp/o"sui.sock`,
		`unix:///tmp/o\sui.sock`,
		"unix:///tmp/a\tb.sock",
		"unix:///tmp/a\rb.sock",
		"unix:///tmp/a\x01b.sock",
		"127.0.0.1:5005\x7f",
	}
	for _, addr := range invalid {
		assert.Error(t, v.Var(addr, "socketuri"), addr)
	}
}

func TestFieldPath(t *testing.T) {
	v := New()

	assert.NoError(t, v.Var("Server.Address", "fieldpath"))
	assert.NoError(t, v.Var("Address", "fieldpath"))
	assert.Error(t, v.Var("", "fieldpath"))
	assert.Error(t, v.Var("Server..Address", "fieldpath"))
	assert.Error(t, v.Var(".Address", "fieldpath"))
}

func TestStructMessages(t *testing.T) {
	type patch struct {
		Address string `mapstructure:"target_address" validate:"socketuri"`
		Editor  string `mapstructure:"editor" validate:"oneof=auto native jq lexical"`
	}
	type root struct {
		Patch patch `mapstructure:"patch"`
	}

	err := New().Struct(root{Patch: patch{Address: "nowhere", Editor: "sed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patch.target_address must be unix://")
	assert.Contains(t, err.Error(), "patch.editor must be one of [auto native jq lexical]")
}
