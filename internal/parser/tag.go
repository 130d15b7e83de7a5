package parser

import (
	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
)

func parseTagCommand(commandWord, args string) (command.Command, error) {
	switch commandWord {
	case "add":
		return parseTagAdd(args)
	case "edit":
		return parseTagEdit(args)
	case "delete":
		return parseTagDelete(args)
	case "list":
		return command.ListTags{}, nil
	case "find":
		return parseTagFind(args)
	default:
		return nil, apperr.Parse(MsgUnknownCommand)
	}
}

// namespaceOf decodes the ct//st/ namespace marker: exactly one of the
// two must be present.
func namespaceOf(m ArgMap) (saleTag, ok bool) {
	ct, st := m.Present(PrefixContactTag), m.Present(PrefixSaleTag)
	if ct == st {
		return false, false
	}
	return st, true
}

func parseTagAdd(args string) (command.Command, error) {
	m := Tokenize(args, PrefixContactTag, PrefixSaleTag)
	saleTag, ok := namespaceOf(m)
	if m.Preamble() != "" || !ok {
		return nil, invalidFormat(UsageTagAdd)
	}
	prefix := PrefixContactTag
	if saleTag {
		prefix = PrefixSaleTag
	}
	raw, _ := m.Value(prefix)
	name, err := models.NewTagName(raw)
	if err != nil {
		return nil, asParseError(err)
	}
	return command.AddTag{Name: name, SaleTag: saleTag}, nil
}

func parseTagEdit(args string) (command.Command, error) {
	m := Tokenize(args, PrefixContactTag, PrefixSaleTag, PrefixTag)
	idx, err := parseIndex(m.Preamble())
	if err != nil {
		return nil, invalidFormat(UsageTagEdit)
	}
	saleTag, ok := namespaceOf(m)
	if !ok || !m.Present(PrefixTag) {
		return nil, invalidFormat(UsageTagEdit)
	}
	raw, _ := m.Value(PrefixTag)
	name, err := models.NewTagName(raw)
	if err != nil {
		return nil, asParseError(err)
	}
	return command.EditTag{Index: idx, SaleTag: saleTag, NewName: name}, nil
}

func parseTagDelete(args string) (command.Command, error) {
	m := Tokenize(args, PrefixContactTag, PrefixSaleTag)
	idx, err := parseIndex(m.Preamble())
	if err != nil {
		return nil, invalidFormat(UsageTagDelete)
	}
	saleTag, ok := namespaceOf(m)
	if !ok {
		return nil, invalidFormat(UsageTagDelete)
	}
	return command.DeleteTag{Index: idx, SaleTag: saleTag}, nil
}

func parseTagFind(args string) (command.Command, error) {
	m := Tokenize(args, PrefixContactTag, PrefixSaleTag)
	saleTag, ok := namespaceOf(m)
	if m.Preamble() != "" || !ok {
		return nil, invalidFormat(UsageTagFind)
	}
	prefix := PrefixContactTag
	if saleTag {
		prefix = PrefixSaleTag
	}
	raw, _ := m.Value(prefix)
	name, err := models.NewTagName(raw)
	if err != nil {
		return nil, asParseError(err)
	}
	return command.FindByTag{Name: name, SaleTag: saleTag}, nil
}
