// SPDX-License-Identifier: EPL-2.0

package demux

import "time"

// Progress is one throttled progress update. Percent is monotonically
// non-decreasing over a run and reaches 100 at normal completion.
type Progress struct {
	Percent         int
	FramesProcessed int64
	TotalFrames     int64
	Elapsed         time.Duration
	Remaining       time.Duration
	HasRemaining    bool
}

// computeProgress derives a progress snapshot from the frame counters and
// elapsed wall time. A zero-frame stream reports 100 immediately and never
// carries an estimate; the estimate also stays absent until at least one
// frame has been processed.
func computeProgress(processed, total int64, elapsed time.Duration) Progress {
	p := Progress{
		FramesProcessed: processed,
		TotalFrames:     total,
		Elapsed:         elapsed,
	}

	if total == 0 {
		p.Percent = 100
		return p
	}

	p.Percent = int(processed * 100 / total)
	if processed > 0 {
		p.Remaining = time.Duration(float64(elapsed) / float64(processed) * float64(total-processed))
		p.HasRemaining = true
	}

	return p
}

// reporter forwards progress to the callback only on integer-percent
// transitions.
type reporter struct {
	total int64
	last  int
	emit  func(Progress)
}

func newReporter(total int64, emit func(Progress)) *reporter {
	return &reporter{total: total, last: -1, emit: emit}
}

func (r *reporter) update(processed int64, elapsed time.Duration) {
	p := computeProgress(processed, r.total, elapsed)
	if p.Percent == r.last {
		return
	}
	r.last = p.Percent

	if r.emit != nil {
		r.emit(p)
	}
}
