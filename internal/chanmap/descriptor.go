// SPDX-License-Identifier: EPL-2.0

package chanmap

import "strings"

// unusedMarker in a label (case-insensitive) drops that channel entirely.
const unusedMarker = "(unused)"

// Descriptor is one non-unused source channel after label normalization.
// Index is the zero-based position of the channel within an interleaved
// frame and always equals the label's position in the original list.
type Descriptor struct {
	Index int
	Name  string
}

// BuildDescriptors normalizes raw channel labels into descriptors.
// Labels containing "(unused)" produce no descriptor. Duplicate names are
// allowed here; BuildPlan resolves them later.
func BuildDescriptors(labels []string) []Descriptor {
	descs := make([]Descriptor, 0, len(labels))

	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), unusedMarker) {
			continue
		}

		descs = append(descs, Descriptor{
			Index: i,
			Name:  normalizeName(label),
		})
	}

	return descs
}

// normalizeName lower-cases the label, strips parentheses and converts
// spaces to hyphens.
func normalizeName(label string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	name = strings.ReplaceAll(name, "(", "")
	name = strings.ReplaceAll(name, ")", "")
	name = strings.ReplaceAll(name, " ", "-")

	return name
}
