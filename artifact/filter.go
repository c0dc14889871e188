package artifact

import "slices"

// Filter selects artifacts by exact name.
//
// An empty Includes list selects every artifact. Excludes always wins:
// a name present in both lists is never selected.
type Filter struct {
	Includes []string
	Excludes []string
}

// Decision is the outcome of matching one artifact name.
type Decision struct {
	Include bool // name is included (or Includes is empty)
	Exclude bool // name is listed in Excludes
}

// Delete reports whether the artifact should be deleted.
func (d Decision) Delete() bool {
	return d.Include && !d.Exclude
}

// Match evaluates name against both lists.
func (f Filter) Match(name string) Decision {
	return Decision{
		Include: len(f.Includes) == 0 || slices.Contains(f.Includes, name),
		Exclude: len(f.Excludes) > 0 && slices.Contains(f.Excludes, name),
	}
}
