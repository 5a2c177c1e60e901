package wavio

import "errors"

var (
	ErrNotWavFile    = errors.New("not a WAV file")
	ErrNoFmtChunk    = errors.New("missing fmt chunk")
	ErrNoDataChunk   = errors.New("missing data chunk")
	ErrShortFmtChunk = errors.New("fmt chunk too short")
)
