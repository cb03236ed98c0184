package sqlgen

import "strings"

// Joiner accumulates clause fragments and joins them with a separator,
// filtering out empty strings. Render uses it to assemble the final
// statement from optional clauses without littering the code with
// presence checks.
type Joiner struct {
	sep   string
	parts []string
}

// NewJoiner creates a Joiner with the given separator.
func NewJoiner(sep string) *Joiner {
	return &Joiner{sep: sep}
}

// Add adds each non-empty part to the joiner.
func (j *Joiner) Add(parts ...string) *Joiner {
	for _, p := range parts {
		if p != "" {
			j.parts = append(j.parts, p)
		}
	}
	return j
}

// Empty returns true if no parts have been added.
func (j *Joiner) Empty() bool {
	return len(j.parts) == 0
}

// String joins all parts with the separator.
func (j *Joiner) String() string {
	return strings.Join(j.parts, j.sep)
}
