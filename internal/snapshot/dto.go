package snapshot

import (
	"fmt"

	"github.com/verlow/clientele/internal/models"
)

// Wire records: primitive-typed twins of the domain records, shared by
// both backends. Decoding runs every field back through its value
// object constructor so only valid records reach the store.

type personRecord struct {
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Email string   `json:"email"`
	Tags  []string `json:"tags,omitempty"`
}

type meetingRecord struct {
	Contact personRecord `json:"contact"`
	Message string       `json:"message"`
	Date    string       `json:"date"`
}

type reminderRecord struct {
	Contact personRecord `json:"contact"`
	Message string       `json:"message"`
	Date    string       `json:"date"`
}

type saleRecord struct {
	Contact    personRecord `json:"contact"`
	Item       string       `json:"item"`
	Date       string       `json:"date"`
	PriceCents int64        `json:"unit_price_cents"`
	Quantity   int          `json:"quantity"`
	Tags       []string     `json:"tags,omitempty"`
}

type tagsRecord struct {
	ContactTags []string `json:"contact_tags,omitempty"`
	SaleTags    []string `json:"sale_tags,omitempty"`
}

func encodePerson(p models.Person) personRecord {
	return personRecord{
		Name:  p.Name.String(),
		Phone: p.Phone.String(),
		Email: p.Email.String(),
		Tags:  encodeTagNames(p.Tags),
	}
}

func decodePerson(r personRecord) (models.Person, error) {
	name, err := models.NewName(r.Name)
	if err != nil {
		return models.Person{}, err
	}
	phone, err := models.NewPhone(r.Phone)
	if err != nil {
		return models.Person{}, err
	}
	email, err := models.NewEmail(r.Email)
	if err != nil {
		return models.Person{}, err
	}
	tags, err := decodeTagNames(r.Tags)
	if err != nil {
		return models.Person{}, err
	}
	return models.NewPerson(name, phone, email, tags), nil
}

func encodeMeeting(m models.Meeting) meetingRecord {
	return meetingRecord{
		Contact: encodePerson(m.Contact),
		Message: m.Message.String(),
		Date:    m.Date.String(),
	}
}

func decodeMeeting(r meetingRecord) (models.Meeting, error) {
	contact, err := decodePerson(r.Contact)
	if err != nil {
		return models.Meeting{}, err
	}
	msg, err := models.NewMessage(r.Message)
	if err != nil {
		return models.Meeting{}, err
	}
	date, err := models.NewDateTime(r.Date)
	if err != nil {
		return models.Meeting{}, err
	}
	return models.NewMeeting(contact, msg, date), nil
}

func encodeReminder(m models.Reminder) reminderRecord {
	return reminderRecord{
		Contact: encodePerson(m.Contact),
		Message: m.Message.String(),
		Date:    m.Date.String(),
	}
}

func decodeReminder(r reminderRecord) (models.Reminder, error) {
	contact, err := decodePerson(r.Contact)
	if err != nil {
		return models.Reminder{}, err
	}
	msg, err := models.NewMessage(r.Message)
	if err != nil {
		return models.Reminder{}, err
	}
	date, err := models.NewDateTime(r.Date)
	if err != nil {
		return models.Reminder{}, err
	}
	return models.NewReminder(contact, msg, date), nil
}

func encodeSale(s models.Sale) saleRecord {
	return saleRecord{
		Contact:    encodePerson(s.Contact),
		Item:       s.Item.String(),
		Date:       s.Date.String(),
		PriceCents: s.Price.Cents(),
		Quantity:   int(s.Qty),
		Tags:       encodeTagNames(s.Tags),
	}
}

func decodeSale(r saleRecord) (models.Sale, error) {
	contact, err := decodePerson(r.Contact)
	if err != nil {
		return models.Sale{}, err
	}
	item, err := models.NewItemName(r.Item)
	if err != nil {
		return models.Sale{}, err
	}
	date, err := models.NewDateTime(r.Date)
	if err != nil {
		return models.Sale{}, err
	}
	price, err := models.NewUnitPriceFromCents(r.PriceCents)
	if err != nil {
		return models.Sale{}, err
	}
	qty, err := models.NewQuantity(r.Quantity)
	if err != nil {
		return models.Sale{}, err
	}
	tags, err := decodeTagNames(r.Tags)
	if err != nil {
		return models.Sale{}, err
	}
	return models.NewSale(contact, item, date, price, qty, tags), nil
}

func encodeTagNames(tags []models.TagName) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

func decodeTagNames(raw []string) ([]models.TagName, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]models.TagName, 0, len(raw))
	for _, s := range raw {
		t, err := models.NewTagName(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// decodeErr labels a decoding failure with its group so load errors
// name the offending document.
func decodeErr(group string, err error) error {
	return fmt.Errorf("snapshot: decode %s: %w", group, err)
}
