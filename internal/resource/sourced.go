// Package resource carries provenance for configuration payloads pulled from
// files or the cluster: which source produced a payload and which consumers
// have referenced it since.
package resource

// InternalSource marks payloads synthesized by certsync itself rather than
// read from an external source.
const InternalSource = "--internal--"

// Sourced wraps a generic payload with its origin. ReferencedBy behaves as an
// ordered set: duplicates are dropped, insertion order is preserved.
type Sourced struct {
	Payload map[string]any
	Source  string

	referencedBy []string
}

// NewSourced tags payload with source, defaulting to InternalSource when the
// source is unknown.
func NewSourced(payload map[string]any, source string) *Sourced {
	if source == "" {
		source = InternalSource
	}
	return &Sourced{Payload: payload, Source: source}
}

// Derive builds a Sourced for payload inheriting the origin of parent when
// one is set.
func Derive(payload map[string]any, parent *Sourced, source string) *Sourced {
	if parent != nil && parent.Source != "" {
		return NewSourced(payload, parent.Source)
	}
	return NewSourced(payload, source)
}

// RecordReference notes that source consumes this payload. Recording the same
// source twice is a no-op.
func (s *Sourced) RecordReference(source string) {
	for _, existing := range s.referencedBy {
		if existing == source {
			return
		}
	}
	s.referencedBy = append(s.referencedBy, source)
}

// ReferencedBy returns the recorded consumers in insertion order.
func (s *Sourced) ReferencedBy() []string {
	out := make([]string, len(s.referencedBy))
	copy(out, s.referencedBy)
	return out
}
