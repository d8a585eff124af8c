package export

import "errors"

var (
	// ErrInvalidDestination indicates the destination path failed its checks.
	ErrInvalidDestination = errors.New("invalid export destination")

	// ErrVaultInvalid indicates the vault failed structural validation.
	ErrVaultInvalid = errors.New("vault validation failed")

	// ErrNoExportableFiles indicates discovery found nothing to export.
	ErrNoExportableFiles = errors.New("no exportable files in vault")

	// ErrRunConsumed indicates Execute was called on an already finished run.
	ErrRunConsumed = errors.New("export run already executed")
)
