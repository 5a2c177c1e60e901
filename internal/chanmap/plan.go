// SPDX-License-Identifier: EPL-2.0

package chanmap

import "strings"

// Kind tags a plan entry as mono or stereo.
type Kind int

const (
	KindMono Kind = iota
	KindStereo
)

// Entry is one output group of the plan. Mono entries use Left as their
// only channel index; stereo entries use both Left and Right.
type Entry struct {
	Kind  Kind
	Name  string
	Left  int
	Right int
}

// ChannelCount returns 1 for mono entries and 2 for stereo entries.
func (e Entry) ChannelCount() int {
	if e.Kind == KindStereo {
		return 2
	}
	return 1
}

// Conflict records a last-write-wins overwrite during pair detection: two
// descriptors resolved to the same base name and side, and the later index
// replaced the earlier one.
type Conflict struct {
	Base      string
	Side      string // "l" or "r"
	PrevIndex int
	Index     int
}

// Plan is the final partition of source channels into output groups.
// Every non-unused channel index appears in exactly one entry, except
// indices displaced by a recorded Conflict.
type Plan struct {
	Entries   []Entry
	Conflicts []Conflict
}

// pairBuilder accumulates left/right candidates for one base name while
// descriptors are folded in.
type pairBuilder struct {
	base     string
	hasLeft  bool
	hasRight bool
	left     int
	right    int
}

// slot preserves first-appearance ordering of plan entries: either a mono
// descriptor or a shared pair builder.
type slot struct {
	pair *pairBuilder
	mono Descriptor
}

const separators = "-_. "

// BuildPlan folds descriptors into stereo pairs and mono channels.
//
// A descriptor whose name ends in "l" or "r" contributes that side to the
// pair keyed by its name with the suffix and any trailing separators
// removed. Pairs with both sides present become stereo entries; a pair
// with only one side degrades to a mono entry renamed "<base>-l" or
// "<base>-r". All other descriptors become mono entries as-is.
func BuildPlan(descs []Descriptor) Plan {
	var plan Plan

	slots := make([]slot, 0, len(descs))
	pairs := make(map[string]*pairBuilder)

	for _, d := range descs {
		side, base, ok := splitPairName(d.Name)
		if !ok {
			slots = append(slots, slot{mono: d})
			continue
		}

		pb, seen := pairs[base]
		if !seen {
			pb = &pairBuilder{base: base}
			pairs[base] = pb
			slots = append(slots, slot{pair: pb})
		}

		switch side {
		case "l":
			if pb.hasLeft {
				plan.Conflicts = append(plan.Conflicts, Conflict{
					Base:      base,
					Side:      side,
					PrevIndex: pb.left,
					Index:     d.Index,
				})
			}
			pb.left = d.Index
			pb.hasLeft = true
		case "r":
			if pb.hasRight {
				plan.Conflicts = append(plan.Conflicts, Conflict{
					Base:      base,
					Side:      side,
					PrevIndex: pb.right,
					Index:     d.Index,
				})
			}
			pb.right = d.Index
			pb.hasRight = true
		}
	}

	plan.Entries = make([]Entry, 0, len(slots))
	for _, s := range slots {
		plan.Entries = append(plan.Entries, s.finalize()...)
	}

	return plan
}

// splitPairName reports whether name looks like one side of a stereo pair.
// It returns the side ("l" or "r") and the base name with the suffix and
// trailing separators stripped.
func splitPairName(name string) (side, base string, ok bool) {
	if name == "" {
		return "", "", false
	}

	last := strings.ToLower(name[len(name)-1:])
	if last != "l" && last != "r" {
		return "", "", false
	}

	base = strings.TrimRight(name[:len(name)-1], separators)
	return last, strings.ToLower(base), true
}

// finalize expands a slot into its plan entries: one stereo entry for a
// confirmed pair, or one mono entry per populated side otherwise.
func (s slot) finalize() []Entry {
	if s.pair == nil {
		return []Entry{{Kind: KindMono, Name: s.mono.Name, Left: s.mono.Index}}
	}

	pb := s.pair
	if pb.hasLeft && pb.hasRight {
		return []Entry{{Kind: KindStereo, Name: pb.base, Left: pb.left, Right: pb.right}}
	}

	var entries []Entry
	if pb.hasLeft {
		entries = append(entries, Entry{Kind: KindMono, Name: orphanName(pb.base, "l"), Left: pb.left})
	}
	if pb.hasRight {
		entries = append(entries, Entry{Kind: KindMono, Name: orphanName(pb.base, "r"), Left: pb.right})
	}
	return entries
}

// orphanName keeps the pair intent visible in the output name of an
// unmatched side.
func orphanName(base, side string) string {
	if base == "" {
		return side
	}
	return base + "-" + side
}
