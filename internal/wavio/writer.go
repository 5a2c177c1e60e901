// SPDX-License-Identifier: EPL-2.0

package wavio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stemsplit/internal/demux"
)

// headerSize is the canonical RIFF + fmt + data header layout the writer
// emits.
const headerSize = 44

// Writer streams raw interleaved frame bytes into a WAV file. The RIFF and
// data chunk sizes are written as zero up front and patched on Close, so
// partial files from a cancelled run still carry a complete header. It
// implements demux.Sink.
type Writer struct {
	w         io.WriteSeeker
	closer    io.Closer
	dataBytes int64
}

// Create opens a WAV file for writing, creating parent directories as
// needed. The header uses format's codec, sample rate, bit depth and
// channel count; TotalFrames and BlockAlign are ignored.
func Create(path string, format demux.Format) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	w, err := NewWriter(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f

	return w, nil
}

// NewWriter writes the WAV header to w and returns a Writer appending
// frame bytes after it. w must support seeking so Close can patch sizes.
func NewWriter(w io.WriteSeeker, format demux.Format) (*Writer, error) {
	if _, err := w.Write(encodeHeader(format, 0)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &Writer{w: w}, nil
}

// encodeHeader builds the 44-byte canonical header for the given format
// and data size.
func encodeHeader(format demux.Format, dataBytes uint32) []byte {
	channels := uint16(format.Channels)
	bitsPerSample := uint16(format.BitDepth)
	blockAlign := channels * bitsPerSample / 8
	byteRate := uint32(format.SampleRate) * uint32(blockAlign)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataBytes)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], uint16(format.Codec))
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(format.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataBytes)

	return header
}

// Append writes raw interleaved frame bytes.
func (w *Writer) Append(p []byte) error {
	n, err := w.w.Write(p)
	w.dataBytes += int64(n)
	if err != nil {
		return fmt.Errorf("write frames: %w", err)
	}
	return nil
}

// Close patches the RIFF and data chunk sizes, then closes the underlying
// file if the Writer owns one.
func (w *Writer) Close() error {
	patchErr := w.patchSizes()

	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}

	return patchErr
}

func (w *Writer) patchSizes() error {
	var sizes [4]byte

	if _, err := w.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("seek riff size: %w", err)
	}
	binary.LittleEndian.PutUint32(sizes[:], uint32(36+w.dataBytes))
	if _, err := w.w.Write(sizes[:]); err != nil {
		return fmt.Errorf("patch riff size: %w", err)
	}

	if _, err := w.w.Seek(40, io.SeekStart); err != nil {
		return fmt.Errorf("seek data size: %w", err)
	}
	binary.LittleEndian.PutUint32(sizes[:], uint32(w.dataBytes))
	if _, err := w.w.Write(sizes[:]); err != nil {
		return fmt.Errorf("patch data size: %w", err)
	}

	return nil
}
