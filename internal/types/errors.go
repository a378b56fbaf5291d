package types

import "errors"

// Patch run failures. Everything except ErrReadCurrentValue aborts the run.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrConfigAccess     = errors.New("config file not accessible")
	ErrBackupFailed     = errors.New("backup failed")
	ErrWriteFailed      = errors.New("write failed")
	ErrReadCurrentValue = errors.New("current value not readable")
)

// Editor failures, wrapped in ErrWriteFailed by the patcher.
var (
	ErrInvalidDocument = errors.New("invalid JSON document")
	ErrFieldNotFound   = errors.New("field not found")
	ErrUnknownEditor   = errors.New("unknown editor")
)
