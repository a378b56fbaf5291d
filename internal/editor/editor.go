// Package editor sets a single string field in a JSON document.
//
// Three strategies exist: an in-process structured edit, the external jq
// tool, and a lexical substitution used when no structured tool is
// available. Select picks one at startup.
package editor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"osuisetup/internal/types"

	"go.uber.org/zap"
)

// Mode names accepted by Select
const (
	ModeAuto    = "auto"
	ModeNative  = "native"
	ModeJQ      = "jq"
	ModeLexical = "lexical"
)

// Editor sets the string value at a dotted field path
type Editor interface {
	// Name identifies the strategy in logs and reports
	Name() string
	// SetString returns doc with field set to value. doc is not modified.
	SetString(ctx context.Context, doc []byte, field, value string) ([]byte, error)
}

// LookPathFunc resolves an executable, like exec.LookPath
type LookPathFunc func(file string) (string, error)

// Select probes for the requested strategy once. A jq request degrades to the
// lexical editor when jq is not installed.
func Select(mode string, lookPath LookPathFunc, logger *zap.Logger) (Editor, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch mode {
	case "", ModeAuto, ModeNative:
		return NewNative(), nil
	case ModeJQ:
		bin, err := lookPath("jq")
		if err != nil {
			logger.Warn("jq not available, falling back to lexical substitution",
				zap.Error(err))
			return NewLexical(), nil
		}
		logger.Debug("Using jq", zap.String("path", bin))
		return NewJQ(bin), nil
	case ModeLexical:
		return NewLexical(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownEditor, mode)
	}
}

// SplitField splits a dotted path into its segments
func SplitField(field string) []string {
	return strings.Split(field, ".")
}

// LastSegment returns the final key of a dotted path
func LastSegment(field string) string {
	parts := SplitField(field)
	return parts[len(parts)-1]
}
