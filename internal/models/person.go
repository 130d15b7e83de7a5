package models

import (
	"fmt"
	"sort"
	"strings"
)

// Person is a stored contact. Identity is value-based: two persons are
// the same record only when every field matches.
type Person struct {
	Name  Name
	Phone Phone
	Email Email
	Tags  []TagName
}

// NewPerson constructs a Person with its tag set normalized.
func NewPerson(name Name, phone Phone, email Email, tags []TagName) Person {
	return Person{
		Name:  name,
		Phone: phone,
		Email: email,
		Tags:  normalizeTags(tags),
	}
}

// Equals compares all fields.
func (p Person) Equals(o Person) bool {
	return p.Name == o.Name &&
		p.Phone == o.Phone &&
		p.Email == o.Email &&
		tagsEqual(p.Tags, o.Tags)
}

// HasTag reports whether the person carries the given tag.
func (p Person) HasTag(t TagName) bool { return hasTag(p.Tags, t) }

// WithTags returns a copy of the person with a replaced tag set.
func (p Person) WithTags(tags []TagName) Person {
	p.Tags = normalizeTags(tags)
	return p
}

func (p Person) String() string {
	s := fmt.Sprintf("%s Phone: %s Email: %s", p.Name, p.Phone, p.Email)
	if len(p.Tags) > 0 {
		var names []string
		for _, t := range p.Tags {
			names = append(names, t.String())
		}
		s += " Tags: [" + strings.Join(names, ", ") + "]"
	}
	return s
}

// normalizeTags returns a sorted, deduplicated copy of tags.
func normalizeTags(tags []TagName) []TagName {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[TagName]struct{}, len(tags))
	out := make([]TagName, 0, len(tags))
	for _, t := range tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func tagsEqual(a, b []TagName) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasTag(tags []TagName, t TagName) bool {
	for _, got := range tags {
		if got == t {
			return true
		}
	}
	return false
}

// ReplaceTag substitutes old with new in a tag set, renormalizing.
func ReplaceTag(tags []TagName, old, new TagName) []TagName {
	out := make([]TagName, 0, len(tags))
	for _, t := range tags {
		if t == old {
			out = append(out, new)
		} else {
			out = append(out, t)
		}
	}
	return normalizeTags(out)
}

// RemoveTag drops a tag from a tag set.
func RemoveTag(tags []TagName, target TagName) []TagName {
	out := make([]TagName, 0, len(tags))
	for _, t := range tags {
		if t != target {
			out = append(out, t)
		}
	}
	return normalizeTags(out)
}
