package i18n

import "errors"

var (
	ErrNilAdapter = errors.New("translation adapter is nil")

	// ErrInvalidCatalog is returned for a catalog whose top level is not a
	// mapping of language codes to translation trees.
	ErrInvalidCatalog = errors.New("invalid translation catalog")

	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrFailedToReadDir   = errors.New("failed to read translation directory")

	// ErrUnsupportedFormat is returned for a file with no matching parser.
	ErrUnsupportedFormat = errors.New("unsupported translation file format")

	ErrLoadingCancelled = errors.New("loading translations cancelled")
)
