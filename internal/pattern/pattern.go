// Package pattern implements the ordered-sequence pattern algebra used by
// the discrimination network. A Pattern holds an ordered list of atomic
// items, is tagged with a modality, and may be marked finished, meaning it
// cannot be extended further. All operations that combine patterns return
// new values; the receivers are never modified by them.
package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// Modality partitions pattern space into independent channels. Operations
// never mix patterns of different modalities.
type Modality string

const (
	Visual Modality = "visual"
	Verbal Modality = "verbal"
	Action Modality = "action"
)

// Modalities lists every supported modality.
var Modalities = []Modality{Visual, Verbal, Action}

// Item is a single atomic symbol within a pattern.
type Item string

// Pattern is an ordered sequence of items with a modality tag and a
// finished flag. Once finished, a pattern accepts no further items.
type Pattern struct {
	items    []Item
	modality Modality
	finished bool
}

// New returns an empty, unfinished pattern for the given modality.
func New(modality Modality) *Pattern {
	return &Pattern{modality: modality}
}

// Of returns an unfinished pattern containing the given items.
func Of(modality Modality, items ...Item) *Pattern {
	p := New(modality)
	for _, it := range items {
		p.Add(it)
	}
	return p
}

// Add appends an item, unless the pattern is finished.
func (p *Pattern) Add(item Item) {
	if !p.finished {
		p.items = append(p.items, item)
	}
}

// Clone returns a copy of p that can be modified without affecting p.
func (p *Pattern) Clone() *Pattern {
	result := New(p.modality)
	result.items = append(result.items, p.items...)
	result.finished = p.finished
	return result
}

// Size returns the number of items in the pattern.
func (p *Pattern) Size() int { return len(p.items) }

// IsEmpty reports whether the pattern holds no items.
func (p *Pattern) IsEmpty() bool { return len(p.items) == 0 }

// Item returns the item at index i. The index is not checked.
func (p *Pattern) Item(i int) Item { return p.items[i] }

// Items returns the items in order. The slice must not be modified.
func (p *Pattern) Items() []Item { return p.items }

// Modality returns the pattern's modality tag.
func (p *Pattern) Modality() Modality { return p.modality }

// IsFinished reports whether the pattern is marked complete.
func (p *Pattern) IsFinished() bool { return p.finished }

// SetFinished marks the pattern complete.
func (p *Pattern) SetFinished() { p.finished = true }

// SetNotFinished clears the finished marker.
func (p *Pattern) SetNotFinished() { p.finished = false }

// SameModality reports whether two patterns share a modality.
func SameModality(a, b *Pattern) bool { return a.modality == b.modality }

// Equals reports whether p and other hold the same items in the same order,
// with the same modality and the same finished flag.
func (p *Pattern) Equals(other *Pattern) bool {
	if p.modality != other.modality {
		return false
	}
	if len(p.items) != len(other.items) {
		return false
	}
	for i, it := range p.items {
		if other.items[i] != it {
			return false
		}
	}
	return p.finished == other.finished
}

// Matches reports whether p is compatible with the given pattern: p must be
// a prefix of it, item for item, in the same modality. A finished p matches
// only a finished pattern of identical length.
func (p *Pattern) Matches(other *Pattern) bool {
	if p.modality != other.modality {
		return false
	}
	if p.finished {
		if len(p.items) != len(other.items) {
			return false
		}
		if !other.finished {
			return false
		}
	} else if len(p.items) > len(other.items) {
		return false
	}
	for i, it := range p.items {
		if other.items[i] != it {
			return false
		}
	}
	return true
}

// Remove returns the part of p left over once the positionally matching
// prefix of the given pattern has been taken away. Items are compared in
// lockstep; from the first mismatch (or the end of the given pattern)
// onwards, every remaining item of p is kept. The result is finished iff p
// is finished, except that an empty result is left unfinished when the
// given pattern is itself finished.
func (p *Pattern) Remove(other *Pattern) *Pattern {
	result := New(p.modality)

	taking := false
	for i, it := range p.items {
		switch {
		case taking:
			result.Add(it)
		case i < len(other.items) && other.items[i] == it:
			// matched prefix item, skip
		default:
			taking = true
			result.Add(it)
		}
	}
	if p.finished && !(result.IsEmpty() && other.finished) {
		result.SetFinished()
	}
	return result
}

// Append returns a new pattern holding p's items followed by the given
// pattern's items. The result is finished iff the given pattern is; p's own
// finished flag is discarded.
func (p *Pattern) Append(other *Pattern) *Pattern {
	result := New(p.modality)
	for _, it := range p.items {
		result.Add(it)
	}
	for _, it := range other.items {
		result.Add(it)
	}
	if other.finished {
		result.SetFinished()
	}
	return result
}

// AppendItem returns a new unfinished pattern holding p's items with the
// given item appended.
func (p *Pattern) AppendItem(item Item) *Pattern {
	result := New(p.modality)
	for _, it := range p.items {
		result.Add(it)
	}
	result.Add(item)
	return result
}

// FirstItem returns a finished pattern containing just p's first item, or a
// finished empty pattern if p is empty.
func (p *Pattern) FirstItem() *Pattern {
	result := New(p.modality)
	if len(p.items) > 0 {
		result.Add(p.items[0])
	}
	result.SetFinished()
	return result
}

// Contains reports whether the given item appears anywhere in p.
func (p *Pattern) Contains(item Item) bool {
	for _, it := range p.items {
		if it == item {
			return true
		}
	}
	return false
}

// IsSimilarTo reports whether p shares at least k items with the given
// pattern. Each matched item is removed from a working copy of the given
// pattern so it cannot be counted twice.
func (p *Pattern) IsSimilarTo(other *Pattern, k int) bool {
	count := 0
	working := other
	for _, it := range p.items {
		if working.Contains(it) {
			count++
			working = working.Remove(Of(p.modality, it))
		}
		if count >= k {
			return true
		}
	}
	return false
}

// Sort returns a new pattern with p's items stably reordered by less.
// The finished flag is preserved.
func (p *Pattern) Sort(less func(a, b Item) bool) *Pattern {
	items := make([]Item, len(p.items))
	copy(items, p.items)
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })

	result := New(p.modality)
	for _, it := range items {
		result.Add(it)
	}
	if p.finished {
		result.SetFinished()
	}
	return result
}

// String renders the pattern in angle-bracket notation, with a trailing $
// marking a finished pattern, e.g. "< A B $ >".
func (p *Pattern) String() string {
	var b strings.Builder
	b.WriteString("< ")
	for _, it := range p.items {
		b.WriteString(string(it))
		b.WriteString(" ")
	}
	if p.finished {
		b.WriteString("$ ")
	}
	b.WriteString(">")
	return b.String()
}

// Parse reads the angle-bracket notation produced by String. The brackets
// themselves are optional; a "$" token, if present, must come last and marks
// the pattern finished.
func Parse(modality Modality, s string) (*Pattern, error) {
	fields := strings.Fields(s)
	if len(fields) > 0 && fields[0] == "<" {
		fields = fields[1:]
	}
	if n := len(fields); n > 0 && fields[n-1] == ">" {
		fields = fields[:n-1]
	}

	p := New(modality)
	for i, f := range fields {
		if f == "$" {
			if i != len(fields)-1 {
				return nil, fmt.Errorf("pattern %q: $ must be the final token", s)
			}
			p.SetFinished()
			return p, nil
		}
		p.Add(Item(f))
	}
	return p, nil
}
