package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/verlow/clientele/internal/apperr"
)

// Constraint messages for sale value objects.
const (
	UnitPriceConstraints = `unit prices should be of the form "DOLLARS.CENTS" with at least one dollars digit ` +
		`and exactly two cents digits, and should be greater than zero`
	QuantityConstraints = "quantities should be integers between 1 and 9999999"
)

// QuantityMax is the largest admissible quantity.
const QuantityMax = 9_999_999

var unitPriceRe = regexp.MustCompile(`^(\d+)\.(\d{2})$`)

// UnitPrice is a per-item price in integer cents. Always positive.
type UnitPrice int64

// NewUnitPrice parses the DOLLARS.CENTS grammar into a UnitPrice.
func NewUnitPrice(s string) (UnitPrice, error) {
	m := unitPriceRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, apperr.Validation("unit price", UnitPriceConstraints)
	}
	dollars, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || dollars > (math.MaxInt64-99)/100 {
		// Dollars run overflows int64 cents.
		return 0, apperr.Validation("unit price", UnitPriceConstraints)
	}
	cents, _ := strconv.ParseInt(m[2], 10, 64)
	return NewUnitPriceFromCents(dollars*100 + cents)
}

// NewUnitPriceFromCents validates a raw cents amount (used on snapshot load).
func NewUnitPriceFromCents(cents int64) (UnitPrice, error) {
	if cents <= 0 {
		return 0, apperr.Validation("unit price", UnitPriceConstraints)
	}
	return UnitPrice(cents), nil
}

// Cents returns the price in integer cents.
func (p UnitPrice) Cents() int64 { return int64(p) }

// String formats the price as $D,DDD.CC, keeping the two-decimal cents.
func (p UnitPrice) String() string {
	return "$" + formatCents(int64(p))
}

func formatCents(cents int64) string {
	dollars := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(dollars, 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return fmt.Sprintf("%s.%02d", b.String(), rem)
}

// Quantity is the number of units in a sale.
type Quantity int

// NewQuantity validates and constructs a Quantity.
func NewQuantity(n int) (Quantity, error) {
	if n < 1 || n > QuantityMax {
		return 0, apperr.Validation("quantity", QuantityConstraints)
	}
	return Quantity(n), nil
}

// NewQuantityFromString parses and validates a Quantity.
func NewQuantityFromString(s string) (Quantity, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperr.Validation("quantity", QuantityConstraints)
	}
	return NewQuantity(n)
}

func (q Quantity) String() string { return strconv.Itoa(int(q)) }

// Sale records a number of items sold to a contact at a point in time.
type Sale struct {
	Contact Person
	Item    ItemName
	Date    DateTime
	Price   UnitPrice
	Qty     Quantity
	Tags    []TagName
}

// NewSale constructs a Sale with its tag set normalized.
func NewSale(contact Person, item ItemName, date DateTime, price UnitPrice, qty Quantity, tags []TagName) Sale {
	return Sale{
		Contact: contact,
		Item:    item,
		Date:    date,
		Price:   price,
		Qty:     qty,
		Tags:    normalizeTags(tags),
	}
}

// TotalCents is the sale total in integer cents.
func (s Sale) TotalCents() int64 {
	return s.Price.Cents() * int64(s.Qty)
}

// Equals compares all fields.
func (s Sale) Equals(o Sale) bool {
	return s.Contact.Equals(o.Contact) &&
		s.Item == o.Item &&
		s.Date.Equal(o.Date) &&
		s.Price == o.Price &&
		s.Qty == o.Qty &&
		tagsEqual(s.Tags, o.Tags)
}

// HasTag reports whether the sale carries the given tag.
func (s Sale) HasTag(t TagName) bool { return hasTag(s.Tags, t) }

// WithTags returns a copy of the sale with a replaced tag set.
func (s Sale) WithTags(tags []TagName) Sale {
	s.Tags = normalizeTags(tags)
	return s
}

func (s Sale) String() string {
	return fmt.Sprintf("%s (x%s to %s on %s, %s each, total $%s)",
		s.Item, s.Qty, s.Contact.Name, s.Date, s.Price, formatCents(s.TotalCents()))
}
