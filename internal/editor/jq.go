package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"osuisetup/internal/types"
)

// jqProgram sets $value at $path, creating missing parents
const jqProgram = `setpath($path; $value)`

// JQ runs the external jq binary. jq re-serializes the whole document, so
// values are preserved but formatting is not.
type JQ struct {
	bin string
}

// NewJQ creates an editor backed by the jq binary at bin
func NewJQ(bin string) *JQ {
	return &JQ{bin: bin}
}

// Name implements Editor
func (*JQ) Name() string { return ModeJQ }

// SetString implements Editor
func (e *JQ) SetString(ctx context.Context, doc []byte, field, value string) ([]byte, error) {
	path, err := json.Marshal(SplitField(field))
	if err != nil {
		return nil, fmt.Errorf("failed to encode path: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.bin,
		"--argjson", "path", string(path),
		"--arg", "value", value,
		jqProgram,
	)
	cmd.Stdin = bytes.NewReader(doc)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: jq: %s", types.ErrInvalidDocument, msg)
	}

	out := stdout.Bytes()
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, fmt.Errorf("%w: jq produced no output", types.ErrInvalidDocument)
	}
	return out, nil
}
