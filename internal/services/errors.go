package services

import "errors"

// Common service errors
var (
	ErrUnknownExportFormat = errors.New("unknown export format")
)
