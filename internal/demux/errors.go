// SPDX-License-Identifier: EPL-2.0

package demux

import "errors"

var (
	ErrNilSource        = errors.New("source must not be nil")
	ErrNilSinkOpener    = errors.New("sink opener must not be nil")
	ErrUnsupportedCodec = errors.New("source must be PCM or IEEE-float")
	ErrBadBitDepth      = errors.New("bit depth must be a positive multiple of 8")
	ErrBlockAlign       = errors.New("block alignment does not match bytes per sample times channel count")
	ErrNoLabels         = errors.New("channel label list is empty")
	ErrLabelCount       = errors.New("channel label count does not match source channel count")
)
