package parser

import (
	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
)

func parseMeetingCommand(commandWord, args string) (command.Command, error) {
	switch commandWord {
	case "add":
		return parseMeetingAdd(args)
	case "delete":
		return parseMeetingDelete(args)
	case "list":
		return command.ListMeetings{}, nil
	default:
		return nil, apperr.Parse(MsgUnknownCommand)
	}
}

func parseMeetingAdd(args string) (command.Command, error) {
	m := Tokenize(args, PrefixIndex, PrefixMessage, PrefixDate)
	if m.Preamble() != "" || !m.allPresent(PrefixIndex, PrefixMessage, PrefixDate) {
		return nil, invalidFormat(UsageMeetingAdd)
	}

	rawIndex, _ := m.Value(PrefixIndex)
	idx, err := parseIndex(rawIndex)
	if err != nil {
		return nil, invalidFormat(UsageMeetingAdd)
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

	return command.AddMeeting{ContactIndex: idx, Message: msg, Date: date}, nil
}

func parseMeetingDelete(args string) (command.Command, error) {
	idx, err := parseIndex(args)
	if err != nil {
		return nil, invalidFormat(UsageMeetingDelete)
	}
	return command.DeleteMeeting{Index: idx}, nil
}
