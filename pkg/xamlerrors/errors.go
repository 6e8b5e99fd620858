package xamlerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage indicates the command line does not match a supported shape.
	ErrUsage = errors.New("invalid usage")

	// ErrInvalidScaling indicates a scaling value that is not an integer in
	// the supported range.
	ErrInvalidScaling = errors.New("invalid value for parameter 'scaling'")

	// ErrRead indicates an error occurred while reading.
	ErrRead = errors.New("read")

	// ErrReadFile indicates an error occurred while reading a file.
	ErrReadFile = fmt.Errorf("file: %w", ErrRead)

	// ErrReadDir indicates an error occurred while enumerating a directory.
	ErrReadDir = fmt.Errorf("directory: %w", ErrRead)

	// ErrParse indicates a document could not be parsed as XML.
	ErrParse = errors.New("parse document")

	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrInvalidConfig indicates a configuration file could not be loaded.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidPattern indicates a catalog pattern with missing parts.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrPartialFailure indicates some files or directories failed while
	// others were processed.
	ErrPartialFailure = errors.New("some paths could not be processed")
)
