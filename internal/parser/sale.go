package parser

import (
	"strconv"
	"strings"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
)

func parseSaleCommand(commandWord, args string) (command.Command, error) {
	switch commandWord {
	case "add":
		return parseSaleAdd(args)
	case "delete":
		return parseSaleDelete(args)
	case "list":
		return parseSaleList(args)
	case "stats":
		return parseSaleStats(args)
	default:
		return nil, apperr.Parse(MsgUnknownCommand)
	}
}

func parseSaleAdd(args string) (command.Command, error) {
	m := Tokenize(args, PrefixIndex, PrefixName, PrefixDate, PrefixPrice, PrefixQuantity, PrefixTag)
	if m.Preamble() != "" || !m.allPresent(PrefixIndex, PrefixName, PrefixDate, PrefixPrice, PrefixQuantity) {
		return nil, invalidFormat(UsageSaleAdd)
	}

	rawIndex, _ := m.Value(PrefixIndex)
	idx, err := parseIndex(rawIndex)
	if err != nil {
		return nil, invalidFormat(UsageSaleAdd)
	}
	rawItem, _ := m.Value(PrefixName)
	item, err := models.NewItemName(rawItem)
	if err != nil {
		return nil, asParseError(err)
	}
	rawDate, _ := m.Value(PrefixDate)
	date, err := models.NewDateTime(rawDate)
	if err != nil {
		return nil, asParseError(err)
	}
	rawPrice, _ := m.Value(PrefixPrice)
	price, err := models.NewUnitPrice(rawPrice)
	if err != nil {
		return nil, asParseError(err)
	}
	rawQty, _ := m.Value(PrefixQuantity)
	qty, err := models.NewQuantityFromString(rawQty)
	if err != nil {
		return nil, asParseError(err)
	}
	tags, _, err := parseTagSet(m)
	if err != nil {
		return nil, err
	}

	return command.AddSale{
		ContactIndex: idx,
		Item:         item,
		Date:         date,
		Price:        price,
		Qty:          qty,
		Tags:         tags,
	}, nil
}

func parseSaleDelete(args string) (command.Command, error) {
	idx, err := parseIndex(args)
	if err != nil {
		return nil, invalidFormat(UsageSaleDelete)
	}
	return command.DeleteSale{Index: idx}, nil
}

func parseSaleList(args string) (command.Command, error) {
	m := Tokenize(args, PrefixIndex)
	if m.Preamble() != "" {
		return nil, invalidFormat(UsageSaleList)
	}
	if !m.Present(PrefixIndex) {
		return command.ListSales{}, nil
	}
	raw, _ := m.Value(PrefixIndex)
	idx, err := parseIndex(raw)
	if err != nil {
		return nil, invalidFormat(UsageSaleList)
	}
	return command.ListSales{ContactIndex: &idx}, nil
}

func parseSaleStats(args string) (command.Command, error) {
	m := Tokenize(args, PrefixMonths)
	raw, ok := m.Value(PrefixMonths)
	if m.Preamble() != "" || !ok {
		return nil, invalidFormat(UsageSaleStats)
	}
	months, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, invalidFormat(UsageSaleStats)
	}
	return command.SaleStats{Months: months}, nil
}
