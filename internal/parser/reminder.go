package parser

import (
	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
)

func parseReminderCommand(commandWord, args string) (command.Command, error) {
	switch commandWord {
	case "add":
		return parseReminderAdd(args)
	case "delete":
		return parseReminderDelete(args)
	case "list":
		return command.ListReminders{}, nil
	default:
		return nil, apperr.Parse(MsgUnknownCommand)
	}
}

func parseReminderAdd(args string) (command.Command, error) {
	m := Tokenize(args, PrefixIndex, PrefixMessage, PrefixDate)
	if m.Preamble() != "" || !m.allPresent(PrefixIndex, PrefixMessage, PrefixDate) {
		return nil, invalidFormat(UsageReminderAdd)
	}

	rawIndex, _ := m.Value(PrefixIndex)
	idx, err := parseIndex(rawIndex)
	if err != nil {
		return nil, invalidFormat(UsageReminderAdd)
	}
	rawMessage, _ := m.Value(PrefixMessage)
	msg, err := models.NewMessage(rawMessage)
	if err != nil {
		return nil, asParseError(err)
	}
	rawDate, _ := m.Value(PrefixDate)
	date, err := models.NewDateTime(rawDate)
	if err != nil {
		return nil, asParseError(err)
	}

	return command.AddReminder{ContactIndex: idx, Message: msg, Date: date}, nil
}

func parseReminderDelete(args string) (command.Command, error) {
	idx, err := parseIndex(args)
	if err != nil {
		return nil, invalidFormat(UsageReminderDelete)
	}
	return command.DeleteReminder{Index: idx}, nil
}
