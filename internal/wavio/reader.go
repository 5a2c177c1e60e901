// SPDX-License-Identifier: EPL-2.0

package wavio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"stemsplit/internal/demux"
)

// formatExtensible is the WAVE_FORMAT_EXTENSIBLE tag; the real codec sits
// in the first two bytes of the SubFormat GUID.
const formatExtensible = 0xFFFE

// Reader serves sequential whole-frame reads over a WAV data chunk. It
// implements demux.Source.
type Reader struct {
	r         io.Reader
	closer    io.Closer
	format    demux.Format
	remaining int64 // bytes of whole frames left in the data chunk
}

// Open opens a WAV file for frame reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f

	return r, nil
}

// NewReader parses the RIFF header and chunk list up to the data chunk.
// Unknown chunks (LIST, cue, bext, ...) are skipped.
func NewReader(r io.Reader) (*Reader, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrNotWavFile
	}
	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var (
		format  demux.Format
		haveFmt bool
	)

	for {
		var ch [8]byte
		if _, err := io.ReadFull(r, ch[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				if !haveFmt {
					return nil, ErrNoFmtChunk
				}
				return nil, ErrNoDataChunk
			}
			return nil, fmt.Errorf("read chunk header: %w", err)
		}

		size := int64(binary.LittleEndian.Uint32(ch[4:8]))

		switch string(ch[:4]) {
		case "fmt ":
			f, err := parseFmtChunk(r, size)
			if err != nil {
				return nil, err
			}
			format = f
			haveFmt = true
			if err := skip(r, size%2); err != nil {
				return nil, err
			}

		case "data":
			if !haveFmt {
				return nil, ErrNoFmtChunk
			}
			if fb := int64(format.FrameBytes()); fb > 0 {
				format.TotalFrames = size / fb
			}
			return &Reader{
				r:         r,
				format:    format,
				remaining: format.TotalFrames * int64(format.FrameBytes()),
			}, nil

		default:
			// Metadata chunk; skip body plus pad byte.
			if err := skip(r, size+size%2); err != nil {
				return nil, err
			}
		}
	}
}

func parseFmtChunk(r io.Reader, size int64) (demux.Format, error) {
	var format demux.Format

	if size < 16 {
		return format, ErrShortFmtChunk
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return format, fmt.Errorf("read fmt chunk: %w", err)
	}

	tag := binary.LittleEndian.Uint16(body[0:2])
	format.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
	format.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
	format.BlockAlign = int(binary.LittleEndian.Uint16(body[12:14]))
	format.BitDepth = int(binary.LittleEndian.Uint16(body[14:16]))

	if tag == formatExtensible && size >= 40 {
		tag = binary.LittleEndian.Uint16(body[24:26])
	}
	format.Codec = demux.Codec(tag)

	return format, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("skip chunk: %w", err)
	}
	return nil
}

// Format describes the stream behind the data chunk.
func (r *Reader) Format() demux.Format { return r.format }

// ReadFrames fills dst with whole interleaved frames and returns the frame
// count. At end of the data chunk it returns 0, io.EOF. A stream shorter
// than its declared data size ends early with the frames that exist.
func (r *Reader) ReadFrames(dst []byte) (int, error) {
	fb := r.format.FrameBytes()
	if fb <= 0 || len(dst) < fb {
		return 0, io.ErrShortBuffer
	}
	if r.remaining == 0 {
		return 0, io.EOF
	}

	want := int64(len(dst) - len(dst)%fb)
	if want > r.remaining {
		want = r.remaining
	}

	n, err := io.ReadFull(r.r, dst[:want])
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		n -= n % fb
		if n == 0 {
			r.remaining = 0
			return 0, io.EOF
		}
	} else if err != nil {
		return 0, fmt.Errorf("read frames: %w", err)
	}

	r.remaining -= int64(n)
	return n / fb, nil
}

// Close closes the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	if err := r.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
