// Package patcher points a daemon config file at a new server address.
//
// A run backs the file up, reads the current value for display, sets the
// configured field and atomically replaces the file. A run either completes
// both the backup and the edit, or leaves the original file untouched.
package patcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"osuisetup/internal/backup"
	"osuisetup/internal/config"
	"osuisetup/internal/editor"
	"osuisetup/internal/types"

	"github.com/creachadair/atomicfile"
	"go.uber.org/zap"
)

// backupFunc matches backup.Create
type backupFunc func(path string, data []byte, mode fs.FileMode, clock backup.Clock) (string, error)

// Patcher rewrites one string field of a JSON config file
type Patcher struct {
	cfg    config.PatchConfig
	editor editor.Editor
	clock  backup.Clock
	logger *zap.Logger

	backup backupFunc
}

// New creates a patcher. The editor is chosen up front, see editor.Select.
func New(cfg config.PatchConfig, ed editor.Editor, clock backup.Clock, logger *zap.Logger) *Patcher {
	if clock == nil {
		clock = backup.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Patcher{
		cfg:    cfg,
		editor: ed,
		clock:  clock,
		logger: logger,
		backup: backup.Create,
	}
}

// Run performs one patch
func (p *Patcher) Run(ctx context.Context) (*types.PatchResult, error) {
	path := p.cfg.ConfigPath
	log := p.logger.With(zap.String("path", path), zap.String("editor", p.editor.Name()))

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrConfigAccess, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", types.ErrConfigNotFound, path)
	}
	mode := info.Mode().Perm()

	// Edit the link target, the rename would otherwise replace the link
	resolved, err := backup.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfigAccess, err)
	}
	if resolved != path {
		log.Debug("Following symlink", zap.String("target", resolved))
		path = resolved
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", types.ErrBackupFailed, path, err)
	}

	backupPath, err := p.backup(path, original, mode, p.clock)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrBackupFailed, err)
	}
	log.Info("Backup created", zap.String("backup", backupPath))

	result := &types.PatchResult{
		ConfigPath: path,
		BackupPath: backupPath,
		Field:      p.cfg.Field,
		Current:    p.cfg.TargetAddress,
		Editor:     p.editor.Name(),
	}

	// Display only. The scan matches any key with this name, which is not
	// necessarily the one under the configured field.
	previous, err := editor.ScanString(original, editor.LastSegment(p.cfg.Field))
	if err != nil {
		log.Warn("Could not read current value", zap.Error(err))
	} else {
		result.Previous = previous
		log.Debug("Current value", zap.String("value", previous))
	}

	updated, err := p.editor.SetString(ctx, original, p.cfg.Field, p.cfg.TargetAddress)
	if err != nil {
		return result, fmt.Errorf("%w: %v", types.ErrWriteFailed, err)
	}

	result.Changed = !bytes.Equal(updated, original)
	if !result.Changed {
		log.Info("Field already set", zap.String("field", p.cfg.Field))
		return result, nil
	}

	if err := atomicfile.WriteData(path, updated, mode); err != nil {
		return result, fmt.Errorf("%w: replace %s: %v", types.ErrWriteFailed, path, err)
	}

	log.Info("Config updated",
		zap.String("field", p.cfg.Field),
		zap.String("address", p.cfg.TargetAddress))
	return result, nil
}
