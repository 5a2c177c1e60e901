// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"errors"
	"fmt"

	"stemsplit/internal/chanmap"
)

// FileName returns the output file name for a plan entry: stereo groups get
// "<base>-stereo.wav", mono channels "<name>.wav". Entries whose normalized
// name came out empty fall back to a name derived from the entry so no file
// name is ever empty.
func FileName(e chanmap.Entry) string {
	if e.Kind == chanmap.KindStereo {
		if e.Name == "" {
			return "stereo.wav"
		}
		return e.Name + "-stereo.wav"
	}

	if e.Name == "" {
		return fmt.Sprintf("channel-%d.wav", e.Left)
	}
	return e.Name + ".wav"
}

// sinkSet owns the open sinks for a run, indexed by plan entry.
type sinkSet struct {
	sinks []Sink
}

// openSinks opens one sink per plan entry before any frame is processed.
// If any open fails, the sinks opened so far are closed and the run aborts
// with nothing written.
func openSinks(entries []chanmap.Entry, open SinkOpener) (*sinkSet, error) {
	ss := &sinkSet{sinks: make([]Sink, 0, len(entries))}

	for _, e := range entries {
		name := FileName(e)
		s, err := open(name, e.ChannelCount())
		if err != nil {
			_ = ss.closeAll()
			return nil, fmt.Errorf("open sink %q: %w", name, err)
		}
		ss.sinks = append(ss.sinks, s)
	}

	return ss, nil
}

func (ss *sinkSet) append(i int, p []byte) error {
	if err := ss.sinks[i].Append(p); err != nil {
		return fmt.Errorf("write sink: %w", err)
	}
	return nil
}

// closeAll closes every sink exactly once. A failing close does not stop
// the remaining sinks from being closed; all failures are joined.
func (ss *sinkSet) closeAll() error {
	var errs []error
	for _, s := range ss.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	ss.sinks = nil

	return errors.Join(errs...)
}
