package walk

import "github.com/MacroPower/xamlscale/pkg/xaml"

type (
	// Sent before a file is rescaled.
	EventFileStarted struct {
		Path string
	}

	// Sent when a file has been rescaled, or when rescaling it failed.
	EventFileDone struct {
		Err   error
		Path  string
		Stats xaml.Stats
	}

	// Sent when a directory could not be read.
	EventDirFailed struct {
		Err  error
		Path string
	}
)
