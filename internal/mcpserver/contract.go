package mcpserver

// CommandReference describes the command language that LLM consumers
// should follow when driving the execute_command tool.
const CommandReference = `# Clientele Command Reference

Every command is a single line: a group word, a command word, then
prefixed arguments. Prefixes must follow whitespace; order does not
matter; the last occurrence of a repeated single-value prefix wins.

## Prefixes

- ` + "`i/`" + ` one-based index into the currently displayed list
- ` + "`n/`" + ` contact name or sale item name
- ` + "`p/`" + ` phone number (contacts) or unit price (sales, DOLLARS.CENTS)
- ` + "`e/`" + ` email address
- ` + "`m/`" + ` message text (meetings, reminders) or month count (stats)
- ` + "`d/`" + ` date, ` + "`YYYY-MM-DD HH:MM`" + ` or ` + "`YYYY-MM-DD`" + `
- ` + "`q/`" + ` quantity, integer from 1 to 9999999
- ` + "`t/`" + ` tag name (repeatable)
- ` + "`ct/`" + ` contact-tag namespace marker
- ` + "`st/`" + ` sale-tag namespace marker

## Contacts

- ` + "`contact add n/NAME p/PHONE e/EMAIL [t/TAG]...`" + `
- ` + "`contact edit INDEX [n/NAME] [p/PHONE] [e/EMAIL] [t/TAG]...`" + `
  (a single empty ` + "`t/`" + ` clears all tags)
- ` + "`contact delete INDEX`" + `
- ` + "`contact list`" + `
- ` + "`contact find KEYWORD [KEYWORD]...`" + `

## Meetings and reminders

- ` + "`meeting add i/CONTACT_INDEX m/MESSAGE d/DATE`" + `
- ` + "`meeting delete INDEX`" + ` / ` + "`meeting list`" + `
- ` + "`reminder add i/CONTACT_INDEX m/MESSAGE d/DATE`" + `
- ` + "`reminder delete INDEX`" + ` / ` + "`reminder list`" + `

## Sales

- ` + "`sale add i/CONTACT_INDEX n/ITEM d/DATE p/PRICE q/QUANTITY [t/TAG]...`" + `
- ` + "`sale delete INDEX`" + `
- ` + "`sale list [i/CONTACT_INDEX]`" + ` (no index lists every sale)
- ` + "`sale stats m/MONTHS`" + ` (1 to 12 trailing months)

## Tags

Tags live in two independent namespaces: contact tags and sale tags.
Each tag command names exactly one namespace with ` + "`ct/`" + ` or ` + "`st/`" + `.

- ` + "`tag add ct/NAME`" + ` or ` + "`tag add st/NAME`" + `
- ` + "`tag edit INDEX ct/ t/NEW_NAME`" + ` (renames, cascading to records)
- ` + "`tag delete INDEX ct/`" + ` or ` + "`tag delete INDEX st/`" + `
- ` + "`tag list`" + `
- ` + "`tag find ct/NAME`" + ` or ` + "`tag find st/NAME`" + `

## General

- ` + "`help`" + `, ` + "`clear`" + `, ` + "`exit`" + `

## Failure modes

- Malformed input fails with "invalid command format!" plus the usage
  line for the attempted command.
- A syntactically valid command against the wrong state (index out of
  range, duplicate record, unknown tag) fails with a specific message
  and leaves the data unchanged.
`
