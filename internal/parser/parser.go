// Package parser converts raw command text into validated command
// objects. Dispatch is two-level: the first word selects a group (or a
// general command), the second word selects the command within the
// group, and the remainder is tokenized by prefixes into value
// objects. Parsing never touches the store and is deterministic for a
// given input string.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
)

// MsgUnknownCommand is returned for an unrecognized command word.
const MsgUnknownCommand = "unknown command"

// Usage strings embedded in invalid-format errors.
const (
	UsageContactAdd    = "contact add n/NAME p/PHONE e/EMAIL [t/TAG]..."
	UsageContactEdit   = "contact edit INDEX [n/NAME] [p/PHONE] [e/EMAIL] [t/TAG]..."
	UsageContactDelete = "contact delete INDEX"
	UsageContactFind   = "contact find KEYWORD [MORE_KEYWORDS]..."

	UsageMeetingAdd    = "meeting add i/CONTACT_INDEX m/MESSAGE d/DATE"
	UsageMeetingDelete = "meeting delete INDEX"

	UsageReminderAdd    = "reminder add i/CONTACT_INDEX m/MESSAGE d/DATE"
	UsageReminderDelete = "reminder delete INDEX"

	UsageSaleAdd    = "sale add i/CONTACT_INDEX n/ITEM_NAME d/DATE p/UNIT_PRICE q/QUANTITY [t/TAG]..."
	UsageSaleDelete = "sale delete INDEX"
	UsageSaleList   = "sale list [i/CONTACT_INDEX]"
	UsageSaleStats  = "sale stats m/NUMBER_OF_MONTHS"

	UsageTagAdd    = "tag add ct/TAG_NAME or tag add st/TAG_NAME"
	UsageTagEdit   = "tag edit INDEX ct/ or st/ t/NEW_TAG_NAME"
	UsageTagDelete = "tag delete INDEX ct/ or st/"
	UsageTagFind   = "tag find ct/TAG_NAME or tag find st/TAG_NAME"
)

// invalidFormat builds the ParseError for a malformed command,
// embedding the command's usage.
func invalidFormat(usage string) error {
	return apperr.Parse("invalid command format!\n%s", usage)
}

// groupParser parses one group's command word plus argument remainder.
type groupParser func(commandWord, args string) (command.Command, error)

var inputFormat = regexp.MustCompile(`(?s)^\s*(?P<word>\S+)(?P<args>.*)$`)

// Parser is the top-level command-text parser.
type Parser struct {
	groups  map[string]groupParser
	general map[string]command.Command
}

// New builds the parser, wiring every group. The word tables are
// checked for duplicates so a colliding registration fails at startup
// instead of shadowing silently.
func New() (*Parser, error) {
	p := &Parser{
		groups: map[string]groupParser{},
		general: map[string]command.Command{
			"help":  command.Help{},
			"exit":  command.Exit{},
			"clear": command.Clear{},
		},
	}
	register := func(word string, gp groupParser) error {
		if _, dup := p.groups[word]; dup {
			return fmt.Errorf("parser: duplicate group word %q", word)
		}
		if _, dup := p.general[word]; dup {
			return fmt.Errorf("parser: group word %q collides with a general command", word)
		}
		p.groups[word] = gp
		return nil
	}
	for word, gp := range map[string]groupParser{
		string(models.GroupContact):  parseContactCommand,
		string(models.GroupMeeting):  parseMeetingCommand,
		string(models.GroupReminder): parseReminderCommand,
		string(models.GroupSale):     parseSaleCommand,
		string(models.GroupTag):      parseTagCommand,
	} {
		if err := register(word, gp); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse converts one line of user input into a command.
func (p *Parser) Parse(input string) (command.Command, error) {
	m := inputFormat.FindStringSubmatch(input)
	if m == nil {
		return nil, apperr.Parse(MsgUnknownCommand)
	}
	word, rest := m[1], m[2]

	if cmd, ok := p.general[word]; ok {
		// General commands ignore trailing text.
		return cmd, nil
	}

	gp, ok := p.groups[word]
	if !ok {
		return nil, apperr.Parse(MsgUnknownCommand)
	}
	sub := inputFormat.FindStringSubmatch(rest)
	if sub == nil {
		return nil, apperr.Parse(MsgUnknownCommand)
	}
	return gp(sub[1], sub[2])
}

// parseIndex parses a one-based display index.
func parseIndex(s string) (models.Index, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperr.Validation("index", models.IndexConstraints)
	}
	return models.NewIndex(n)
}

// asParseError re-labels a value-object validation failure as a
// ParseError so the boundary reports one taxonomy for malformed input.
func asParseError(err error) error {
	return apperr.Parse("%s", err.Error())
}

// parseTagSet parses the repeated t/ values of an ArgMap. A single
// empty t/ denotes an explicit empty set (clear), absence returns nil.
func parseTagSet(m ArgMap) ([]models.TagName, bool, error) {
	raw := m.All(PrefixTag)
	if raw == nil {
		return nil, false, nil
	}
	if len(raw) == 1 && raw[0] == "" {
		return []models.TagName{}, true, nil
	}
	tags := make([]models.TagName, 0, len(raw))
	for _, s := range raw {
		t, err := models.NewTagName(s)
		if err != nil {
			return nil, false, asParseError(err)
		}
		tags = append(tags, t)
	}
	return tags, true, nil
}
