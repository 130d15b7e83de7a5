package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
)

func newParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustParse(t *testing.T, input string) command.Command {
	t.Helper()
	cmd, err := newParser(t).Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) = %v", input, err)
	}
	return cmd
}

// expectInvalidFormat asserts a ParseError carrying the usage line.
func expectInvalidFormat(t *testing.T, input, usage string) {
	t.Helper()
	_, err := newParser(t).Parse(input)
	var pErr *apperr.ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("Parse(%q) = %v, want ParseError", input, err)
	}
	if !strings.Contains(pErr.Msg, "invalid command format!") {
		t.Errorf("Parse(%q) error %q missing invalid-format header", input, pErr.Msg)
	}
	if !strings.Contains(pErr.Msg, usage) {
		t.Errorf("Parse(%q) error %q missing usage %q", input, pErr.Msg, usage)
	}
}

func TestParseGeneralCommands(t *testing.T) {
	if _, ok := mustParse(t, "help").(command.Help); !ok {
		t.Error("help not parsed")
	}
	if _, ok := mustParse(t, "exit").(command.Exit); !ok {
		t.Error("exit not parsed")
	}
	if _, ok := mustParse(t, "clear").(command.Clear); !ok {
		t.Error("clear not parsed")
	}
	// Trailing text after a general command is ignored.
	if _, ok := mustParse(t, "exit now please").(command.Exit); !ok {
		t.Error("exit with trailing text not parsed")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"borrow book",
		"contact fly i/1",
		"sale",
	} {
		_, err := newParser(t).Parse(input)
		var pErr *apperr.ParseError
		if !errors.As(err, &pErr) {
			t.Errorf("Parse(%q) = %v, want ParseError", input, err)
			continue
		}
		if pErr.Msg != MsgUnknownCommand {
			t.Errorf("Parse(%q) = %q, want %q", input, pErr.Msg, MsgUnknownCommand)
		}
	}
}

func TestParseReminderAdd(t *testing.T) {
	cmd := mustParse(t, "reminder add i/2 m/Call Amy d/2023-08-01")
	add, ok := cmd.(command.AddReminder)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if add.ContactIndex.OneBased() != 2 {
		t.Errorf("index = %d", add.ContactIndex.OneBased())
	}
	if add.Message.String() != "Call Amy" {
		t.Errorf("message = %q", add.Message)
	}
	if add.Date.String() != "2023-08-01 00:00" {
		t.Errorf("date = %q", add.Date)
	}
}

func TestParseReminderAdd_Invalid(t *testing.T) {
	// Missing compulsory prefixes.
	expectInvalidFormat(t, "reminder add i/2 m/Call Amy", UsageReminderAdd)
	expectInvalidFormat(t, "reminder add m/Call Amy d/2023-08-01", UsageReminderAdd)
	// Non-empty preamble.
	expectInvalidFormat(t, "reminder add junk i/2 m/Call Amy d/2023-08-01", UsageReminderAdd)
	// Bad index.
	expectInvalidFormat(t, "reminder add i/zero m/Call Amy d/2023-08-01", UsageReminderAdd)
	expectInvalidFormat(t, "reminder add i/0 m/Call Amy d/2023-08-01", UsageReminderAdd)
}

func TestParseReminderAdd_BadDateIsParseError(t *testing.T) {
	_, err := newParser(t).Parse("reminder add i/2 m/Call Amy d/01-08-2023")
	var pErr *apperr.ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("got %v, want ParseError", err)
	}
	if !strings.Contains(pErr.Msg, models.DateTimeConstraints) {
		t.Errorf("error %q missing date constraints", pErr.Msg)
	}
}

func TestParseContactAdd(t *testing.T) {
	cmd := mustParse(t, "contact add n/Amy Bell p/91234567 e/amy@example.com t/friends t/vip")
	add, ok := cmd.(command.AddContact)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if add.Person.Name.String() != "Amy Bell" {
		t.Errorf("name = %q", add.Person.Name)
	}
	if len(add.Person.Tags) != 2 {
		t.Errorf("tags = %v", add.Person.Tags)
	}
}

func TestParseContactAdd_PrefixOrderIrrelevant(t *testing.T) {
	cmd := mustParse(t, "contact add e/amy@example.com n/Amy p/91234567")
	if _, ok := cmd.(command.AddContact); !ok {
		t.Fatalf("got %T", cmd)
	}
}

func TestParseContactAdd_MissingPrefix(t *testing.T) {
	expectInvalidFormat(t, "contact add n/Amy p/91234567", UsageContactAdd)
}

func TestParseContactEdit(t *testing.T) {
	cmd := mustParse(t, "contact edit 2 p/99990000")
	edit, ok := cmd.(command.EditContact)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if edit.Index.OneBased() != 2 {
		t.Errorf("index = %d", edit.Index.OneBased())
	}
	if edit.Descriptor.Phone == nil || edit.Descriptor.Phone.String() != "99990000" {
		t.Errorf("phone descriptor = %v", edit.Descriptor.Phone)
	}
	if edit.Descriptor.Name != nil || edit.Descriptor.Email != nil || edit.Descriptor.Tags != nil {
		t.Error("untouched fields must stay nil")
	}
}

func TestParseContactEdit_ClearTags(t *testing.T) {
	cmd := mustParse(t, "contact edit 1 t/")
	edit := cmd.(command.EditContact)
	if edit.Descriptor.Tags == nil || len(edit.Descriptor.Tags) != 0 {
		t.Errorf("single empty t/ should request a clear, got %v", edit.Descriptor.Tags)
	}
}

func TestParseContactEdit_NoFields(t *testing.T) {
	expectInvalidFormat(t, "contact edit 2", UsageContactEdit)
}

func TestParseContactDeleteAndFind(t *testing.T) {
	del := mustParse(t, "contact delete 3").(command.DeleteContact)
	if del.Index.OneBased() != 3 {
		t.Errorf("index = %d", del.Index.OneBased())
	}

	find := mustParse(t, "contact find alice bob").(command.FindContacts)
	if len(find.Keywords) != 2 || find.Keywords[0] != "alice" {
		t.Errorf("keywords = %v", find.Keywords)
	}

	expectInvalidFormat(t, "contact find", UsageContactFind)
	expectInvalidFormat(t, "contact delete three", UsageContactDelete)
}

func TestParseSaleAdd(t *testing.T) {
	cmd := mustParse(t, "sale add i/1 n/Notebook d/2023-08-01 14:00 p/12.50 q/3 t/bulk")
	add, ok := cmd.(command.AddSale)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if add.Item.String() != "Notebook" {
		t.Errorf("item = %q", add.Item)
	}
	if add.Price.Cents() != 1250 {
		t.Errorf("price = %d", add.Price.Cents())
	}
	if add.Qty != 3 {
		t.Errorf("qty = %d", add.Qty)
	}
	if add.Date.String() != "2023-08-01 14:00" {
		t.Errorf("date = %q", add.Date)
	}
}

func TestParseSaleAdd_BadPriceIsParseError(t *testing.T) {
	_, err := newParser(t).Parse("sale add i/1 n/Notebook d/2023-08-01 p/.50 q/3")
	var pErr *apperr.ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("got %v, want ParseError", err)
	}
	if !strings.Contains(pErr.Msg, "unit price") {
		t.Errorf("error %q not about unit price", pErr.Msg)
	}
}

func TestParseSaleList(t *testing.T) {
	all := mustParse(t, "sale list").(command.ListSales)
	if all.ContactIndex != nil {
		t.Error("bare list should carry no index")
	}

	one := mustParse(t, "sale list i/2").(command.ListSales)
	if one.ContactIndex == nil || one.ContactIndex.OneBased() != 2 {
		t.Errorf("index = %v", one.ContactIndex)
	}

	expectInvalidFormat(t, "sale list everything", UsageSaleList)
}

func TestParseSaleStats(t *testing.T) {
	st := mustParse(t, "sale stats m/5").(command.SaleStats)
	if st.Months != 5 {
		t.Errorf("months = %d", st.Months)
	}
	expectInvalidFormat(t, "sale stats", UsageSaleStats)
	expectInvalidFormat(t, "sale stats m/five", UsageSaleStats)
}

func TestParseTagCommands(t *testing.T) {
	add := mustParse(t, "tag add st/promo").(command.AddTag)
	if !add.SaleTag || add.Name != "promo" {
		t.Errorf("add = %+v", add)
	}

	edit := mustParse(t, "tag edit 1 ct/ t/minions").(command.EditTag)
	if edit.SaleTag || edit.Index.OneBased() != 1 || edit.NewName != "minions" {
		t.Errorf("edit = %+v", edit)
	}

	del := mustParse(t, "tag delete 2 st/").(command.DeleteTag)
	if !del.SaleTag || del.Index.OneBased() != 2 {
		t.Errorf("delete = %+v", del)
	}

	find := mustParse(t, "tag find ct/friends").(command.FindByTag)
	if find.SaleTag || find.Name != "friends" {
		t.Errorf("find = %+v", find)
	}
}

func TestParseTagCommands_Invalid(t *testing.T) {
	// No namespace marker.
	expectInvalidFormat(t, "tag add friends", UsageTagAdd)
	// Both namespace markers.
	expectInvalidFormat(t, "tag add ct/x st/x", UsageTagAdd)
	// Edit without a new name.
	expectInvalidFormat(t, "tag edit 1 ct/", UsageTagEdit)
	// Delete without an index.
	expectInvalidFormat(t, "tag delete ct/", UsageTagDelete)
}

func TestParseMeetingAdd(t *testing.T) {
	cmd := mustParse(t, "meeting add i/1 m/Coffee catchup d/2023-08-01 09:30")
	add, ok := cmd.(command.AddMeeting)
	if !ok {
		t.Fatalf("got %T", cmd)
	}
	if add.Message.String() != "Coffee catchup" {
		t.Errorf("message = %q", add.Message)
	}
	expectInvalidFormat(t, "meeting add i/1 d/2023-08-01", UsageMeetingAdd)
}
