package parser

import (
	"reflect"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	m := Tokenize(" n/Amy Bell p/91234567 e/amy@example.com",
		PrefixName, PrefixPhone, PrefixEmail)

	if m.Preamble() != "" {
		t.Errorf("preamble = %q, want empty", m.Preamble())
	}
	if v, _ := m.Value(PrefixName); v != "Amy Bell" {
		t.Errorf("n/ = %q", v)
	}
	if v, _ := m.Value(PrefixPhone); v != "91234567" {
		t.Errorf("p/ = %q", v)
	}
	if v, _ := m.Value(PrefixEmail); v != "amy@example.com" {
		t.Errorf("e/ = %q", v)
	}
}

func TestTokenizePreamble(t *testing.T) {
	m := Tokenize(" 2 n/Amy", PrefixName)
	if m.Preamble() != "2" {
		t.Errorf("preamble = %q, want 2", m.Preamble())
	}
}

func TestTokenizeLastOccurrenceWins(t *testing.T) {
	m := Tokenize(" n/First n/Second", PrefixName)
	if v, _ := m.Value(PrefixName); v != "Second" {
		t.Errorf("repeated single-value prefix = %q, want Second", v)
	}
	if got := m.All(PrefixName); !reflect.DeepEqual(got, []string{"First", "Second"}) {
		t.Errorf("All = %v", got)
	}
}

func TestTokenizePrefixMustFollowWhitespace(t *testing.T) {
	// The t/ inside ct/ must not tokenize as a tag field.
	m := Tokenize(" ct/friends", PrefixContactTag, PrefixSaleTag, PrefixTag)
	if m.Present(PrefixTag) {
		t.Error("t/ matched inside ct/")
	}
	if v, _ := m.Value(PrefixContactTag); v != "friends" {
		t.Errorf("ct/ = %q", v)
	}

	// Embedded slash text stays inside the current field's value.
	m = Tokenize(" m/buy a/b chart d/2023-08-01", PrefixMessage, PrefixDate)
	if v, _ := m.Value(PrefixMessage); v != "buy a/b chart" {
		t.Errorf("m/ = %q", v)
	}
}

func TestTokenizeNamespaceMarkerWithTagValue(t *testing.T) {
	m := Tokenize(" 1 ct/ t/minions", PrefixContactTag, PrefixSaleTag, PrefixTag)
	if m.Preamble() != "1" {
		t.Errorf("preamble = %q", m.Preamble())
	}
	if !m.Present(PrefixContactTag) || m.Present(PrefixSaleTag) {
		t.Error("namespace marker wrong")
	}
	if v, _ := m.Value(PrefixTag); v != "minions" {
		t.Errorf("t/ = %q", v)
	}
}

func TestTokenizeEmptyValue(t *testing.T) {
	m := Tokenize(" t/", PrefixTag)
	v, ok := m.Value(PrefixTag)
	if !ok || v != "" {
		t.Errorf("empty t/ = %q, %v", v, ok)
	}
}

func TestTokenizeNoPrefixes(t *testing.T) {
	m := Tokenize("  alice bob  ", PrefixName)
	if m.Preamble() != "alice bob" {
		t.Errorf("preamble = %q", m.Preamble())
	}
	if m.Present(PrefixName) {
		t.Error("phantom prefix")
	}
}
