package editor

import (
	"context"
	"fmt"

	"osuisetup/internal/types"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Native edits the document in process. Only the bytes of the target value
// change; the rest of the document is left as written.
type Native struct{}

// NewNative creates a structured in-process editor
func NewNative() *Native {
	return &Native{}
}

// Name implements Editor
func (*Native) Name() string { return ModeNative }

// SetString implements Editor
func (*Native) SetString(ctx context.Context, doc []byte, field, value string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(doc) {
		return nil, types.ErrInvalidDocument
	}
	if !gjson.ParseBytes(doc).IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", types.ErrInvalidDocument)
	}

	// sjson would silently replace a scalar parent with an object
	parts := SplitField(field)
	for i := 1; i < len(parts); i++ {
		parent := joinEscaped(parts[:i])
		if r := gjson.GetBytes(doc, parent); r.Exists() && !r.IsObject() {
			return nil, fmt.Errorf("%w: %s is %s, not an object",
				types.ErrInvalidDocument, parent, r.Type)
		}
	}

	out, err := sjson.SetBytes(doc, joinEscaped(parts), value)
	if err != nil {
		return nil, fmt.Errorf("failed to set %s: %w", field, err)
	}
	return out, nil
}

// joinEscaped builds a gjson/sjson path, escaping path syntax in keys
func joinEscaped(parts []string) string {
	var b []byte
	for i, p := range parts {
		if i > 0 {
			b = append(b, '.')
		}
		for j := 0; j < len(p); j++ {
			switch p[j] {
			case '\\', '*', '?', '|', '#', '@', '!', '.', ':':
				b = append(b, '\\')
			}
			b = append(b, p[j])
		}
	}
	return string(b)
}
