package mesh

import (
	"slices"
)

// ExtracellularTag marks regions without intracellular space (bath).
const ExtracellularTag = 0

// TagSet is the sorted set of distinct element tags of a mesh.
type TagSet struct {
	tags []int
}

// NewTagSet builds a tag set from arbitrary, possibly repeated tags.
func NewTagSet(tags ...int) TagSet {
	s := slices.Clone(tags)
	slices.Sort(s)
	return TagSet{tags: slices.Compact(s)}
}

// TagsOf collects the tag set of the given elements.
func TagsOf(elems []Element) TagSet {
	tags := make([]int, len(elems))
	for i, el := range elems {
		tags[i] = el.Tag
	}
	return NewTagSet(tags...)
}

// All returns every tag, including the extracellular tag when present.
func (s TagSet) All() []int {
	return slices.Clone(s.tags)
}

// Intra returns the tags of regions that carry intracellular space.
func (s TagSet) Intra() []int {
	out := make([]int, 0, len(s.tags))
	for _, t := range s.tags {
		if t != ExtracellularTag {
			out = append(out, t)
		}
	}
	return out
}

// Contains reports whether tag is part of the set.
func (s TagSet) Contains(tag int) bool {
	_, ok := slices.BinarySearch(s.tags, tag)
	return ok
}

// Len returns the number of distinct tags.
func (s TagSet) Len() int { return len(s.tags) }

// ReadTags reads the element file of meshname and returns its tag set.
func ReadTags(meshname string) (TagSet, error) {
	elems, err := ReadElem(ElemPath(meshname))
	if err != nil {
		return TagSet{}, err
	}
	return TagsOf(elems), nil
}
