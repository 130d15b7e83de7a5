package parser

import (
	"sort"
	"strings"
)

// Prefix marks the start of one argument field, e.g. "i/" or "d/".
// Meaning is local to each command: p/ is a phone in contact add and a
// unit price in sale add.
type Prefix string

// The recognized prefixes.
const (
	PrefixIndex      Prefix = "i/"
	PrefixName       Prefix = "n/"
	PrefixPhone      Prefix = "p/"
	PrefixEmail      Prefix = "e/"
	PrefixMessage    Prefix = "m/"
	PrefixDate       Prefix = "d/"
	PrefixPrice      Prefix = "p/"
	PrefixQuantity   Prefix = "q/"
	PrefixMonths     Prefix = "m/"
	PrefixTag        Prefix = "t/"
	PrefixContactTag Prefix = "ct/"
	PrefixSaleTag    Prefix = "st/"
)

// ArgMap holds an argument string tokenized by prefixes: the preamble
// (text before the first prefix) and the values of each prefix in
// order of appearance.
type ArgMap struct {
	preamble string
	values   map[Prefix][]string
}

// Tokenize splits args into preamble and prefixed fields. A prefix
// only counts when it follows whitespace, so "ct/x" never tokenizes as
// a "t/" field. Values are whitespace-trimmed.
func Tokenize(args string, prefixes ...Prefix) ArgMap {
	type hit struct {
		pos    int
		prefix Prefix
	}
	var hits []hit
	for _, p := range prefixes {
		needle := string(p)
		from := 0
		for {
			i := strings.Index(args[from:], needle)
			if i < 0 {
				break
			}
			pos := from + i
			from = pos + len(needle)
			if pos == 0 || !isSpace(args[pos-1]) {
				continue
			}
			hits = append(hits, hit{pos: pos, prefix: p})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	m := ArgMap{values: make(map[Prefix][]string)}
	if len(hits) == 0 {
		m.preamble = strings.TrimSpace(args)
		return m
	}
	m.preamble = strings.TrimSpace(args[:hits[0].pos])
	for i, h := range hits {
		start := h.pos + len(h.prefix)
		end := len(args)
		if i+1 < len(hits) {
			end = hits[i+1].pos
		}
		m.values[h.prefix] = append(m.values[h.prefix], strings.TrimSpace(args[start:end]))
	}
	return m
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Preamble returns the trimmed text before the first prefix.
func (m ArgMap) Preamble() string { return m.preamble }

// Present reports whether the prefix appeared at least once.
func (m ArgMap) Present(p Prefix) bool {
	_, ok := m.values[p]
	return ok
}

// Value returns the last occurrence of the prefix, matching the
// convention that a repeated single-valued field is overridden.
func (m ArgMap) Value(p Prefix) (string, bool) {
	vs, ok := m.values[p]
	if !ok {
		return "", false
	}
	return vs[len(vs)-1], true
}

// All returns every occurrence of the prefix in input order.
func (m ArgMap) All(p Prefix) []string {
	return m.values[p]
}

// allPresent reports whether every listed prefix appeared.
func (m ArgMap) allPresent(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if !m.Present(p) {
			return false
		}
	}
	return true
}
