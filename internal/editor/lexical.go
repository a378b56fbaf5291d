package editor

import (
	"context"
	"fmt"
	"regexp"

	"osuisetup/internal/types"
)

// Lexical replaces the first "<key>": "<string>" pair in the raw text, where
// key is the last segment of the field path.
//
// It does not parse JSON. A key with the same name in an unrelated object
// is matched if it comes first, and the output is not validated.
type Lexical struct{}

// NewLexical creates a substitution editor
func NewLexical() *Lexical {
	return &Lexical{}
}

// Name implements Editor
func (*Lexical) Name() string { return ModeLexical }

// SetString implements Editor
func (*Lexical) SetString(ctx context.Context, doc []byte, field, value string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := LastSegment(field)
	loc := pairPattern(key).FindIndex(doc)
	if loc == nil {
		return nil, fmt.Errorf("%w: no %q string pair", types.ErrFieldNotFound, key)
	}

	replacement := `"` + key + `": "` + value + `"`

	out := make([]byte, 0, len(doc)-(loc[1]-loc[0])+len(replacement))
	out = append(out, doc[:loc[0]]...)
	out = append(out, replacement...)
	out = append(out, doc[loc[1]:]...)
	return out, nil
}

// ScanString returns the first string value of any key named key. It is a
// display helper and ignores nesting.
func ScanString(doc []byte, key string) (string, error) {
	m := pairPattern(key).FindSubmatch(doc)
	if m == nil {
		return "", fmt.Errorf("%w: no %q string pair", types.ErrReadCurrentValue, key)
	}
	return string(m[1]), nil
}

func pairPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"([^"]*)"`)
}
