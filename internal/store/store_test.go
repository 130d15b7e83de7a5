package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
)

func person(t *testing.T, name string, tags ...models.TagName) models.Person {
	t.Helper()
	n, err := models.NewName(name)
	require.NoError(t, err)
	return models.NewPerson(n, "91234567", "x@example.com", tags)
}

func sale(t *testing.T, contact models.Person, item, date string, tags ...models.TagName) models.Sale {
	t.Helper()
	d, err := models.NewDateTime(date)
	require.NoError(t, err)
	price, err := models.NewUnitPrice("9.99")
	require.NoError(t, err)
	qty, err := models.NewQuantity(1)
	require.NoError(t, err)
	return models.NewSale(contact, models.ItemName(item), d, price, qty, tags)
}

func meeting(t *testing.T, contact models.Person, msg, date string) models.Meeting {
	t.Helper()
	d, err := models.NewDateTime(date)
	require.NoError(t, err)
	return models.NewMeeting(contact, models.Message(msg), d)
}

func reminder(t *testing.T, contact models.Person, msg, date string) models.Reminder {
	t.Helper()
	d, err := models.NewDateTime(date)
	require.NoError(t, err)
	return models.NewReminder(contact, models.Message(msg), d)
}

func TestAddPersonRejectsDuplicate(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	require.NoError(t, s.AddPerson(amy))
	require.ErrorIs(t, s.AddPerson(amy), apperr.ErrDuplicate)
	require.Equal(t, 1, s.Size(models.GroupContact))
}

func TestPersonsSortedByName(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson(person(t, "zara")))
	require.NoError(t, s.AddPerson(person(t, "Amy")))
	require.NoError(t, s.AddPerson(person(t, "ben")))

	got := s.Persons()
	require.Len(t, got, 3)
	require.Equal(t, "Amy", got[0].Name.String())
	require.Equal(t, "ben", got[1].Name.String())
	require.Equal(t, "zara", got[2].Name.String())
}

func TestSetPersonFilter(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson(person(t, "Amy")))
	require.NoError(t, s.AddPerson(person(t, "Ben")))

	s.SetPersonFilter(func(p models.Person) bool {
		return strings.Contains(strings.ToLower(p.Name.String()), "amy")
	})
	require.Len(t, s.Persons(), 1)

	s.SetPersonFilter(nil)
	require.Len(t, s.Persons(), 2)
}

func TestRemovePersonCascades(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	ben := person(t, "Ben")
	require.NoError(t, s.AddPerson(amy))
	require.NoError(t, s.AddPerson(ben))
	require.NoError(t, s.AddMeeting(meeting(t, amy, "Coffee", "2023-08-01 09:00")))
	require.NoError(t, s.AddReminder(reminder(t, amy, "Call back", "2023-08-02")))
	require.NoError(t, s.AddSale(sale(t, amy, "Pen", "2023-08-03")))
	require.NoError(t, s.AddSale(sale(t, ben, "Ink", "2023-08-04")))

	require.NoError(t, s.RemovePerson(amy))

	require.Equal(t, 0, s.Size(models.GroupMeeting))
	require.Equal(t, 0, s.Size(models.GroupReminder))
	require.Equal(t, 1, s.Size(models.GroupSale))
	require.Equal(t, "Ink", s.AllSales()[0].Item.String())
}

func TestReplacePersonRetargetsDependents(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	require.NoError(t, s.AddPerson(amy))
	require.NoError(t, s.AddMeeting(meeting(t, amy, "Coffee", "2023-08-01 09:00")))
	require.NoError(t, s.AddSale(sale(t, amy, "Pen", "2023-08-03")))

	edited := person(t, "Amy Bell")
	require.NoError(t, s.ReplacePerson(amy, edited))

	require.Equal(t, "Amy Bell", s.Meetings()[0].Contact.Name.String())
	require.Equal(t, "Amy Bell", s.AllSales()[0].Contact.Name.String())
}

func TestReplacePersonRejectsCollision(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	ben := person(t, "Ben")
	require.NoError(t, s.AddPerson(amy))
	require.NoError(t, s.AddPerson(ben))
	require.ErrorIs(t, s.ReplacePerson(amy, ben), apperr.ErrDuplicate)
}

func TestSalesHiddenByDefault(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	require.NoError(t, s.AddPerson(amy))
	require.NoError(t, s.AddSale(sale(t, amy, "Pen", "2023-08-03")))

	require.Empty(t, s.Sales(), "sales are hidden until a listing selects them")
	require.Len(t, s.AllSales(), 1)

	s.SetSaleFilter(nil)
	require.Len(t, s.Sales(), 1)
}

func TestAllSalesDateOrdered(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	require.NoError(t, s.AddPerson(amy))
	require.NoError(t, s.AddSale(sale(t, amy, "Later", "2023-09-01")))
	require.NoError(t, s.AddSale(sale(t, amy, "Earlier", "2023-08-01")))

	got := s.AllSales()
	require.Equal(t, "Earlier", got[0].Item.String())
	require.Equal(t, "Later", got[1].Item.String())
}

func TestAddPersonAbsorbsContactTags(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPerson(person(t, "Amy", "vip", "friends")))
	require.Equal(t, []models.TagName{"friends", "vip"}, s.ContactTags())
}

func TestRenameContactTagCascades(t *testing.T) {
	s := New()
	amy := person(t, "Amy", "friends")
	require.NoError(t, s.AddPerson(amy))

	require.NoError(t, s.RenameContactTag("friends", "minions"))
	require.Equal(t, []models.TagName{"minions"}, s.ContactTags())
	require.True(t, s.Persons()[0].HasTag("minions"))
	require.False(t, s.Persons()[0].HasTag("friends"))
}

func TestRenameContactTagErrors(t *testing.T) {
	s := New()
	require.NoError(t, s.AddContactTag("a"))
	require.NoError(t, s.AddContactTag("b"))
	require.ErrorIs(t, s.RenameContactTag("missing", "c"), apperr.ErrNotFound)
	require.ErrorIs(t, s.RenameContactTag("a", "b"), apperr.ErrDuplicate)
}

func TestRemoveSaleTagStripsSales(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	require.NoError(t, s.AddPerson(amy))
	require.NoError(t, s.AddSale(sale(t, amy, "Pen", "2023-08-03", "promo")))
	require.Equal(t, []models.TagName{"promo"}, s.SaleTags())

	require.NoError(t, s.RemoveSaleTag("promo"))
	require.Empty(t, s.SaleTags())
	require.Empty(t, s.AllSales()[0].Tags)
}

func TestTagNamespacesIndependent(t *testing.T) {
	s := New()
	require.NoError(t, s.AddContactTag("vip"))
	require.NoError(t, s.AddSaleTag("vip"))
	require.True(t, s.HasContactTag("vip"))
	require.True(t, s.HasSaleTag("vip"))

	require.NoError(t, s.RemoveContactTag("vip"))
	require.True(t, s.HasSaleTag("vip"), "sale namespace untouched")
}

func TestCountByContactTagAndSalesByTag(t *testing.T) {
	s := New()
	amy := person(t, "Amy", "vip")
	ben := person(t, "Ben", "vip")
	cal := person(t, "Cal")
	for _, p := range []models.Person{amy, ben, cal} {
		require.NoError(t, s.AddPerson(p))
	}
	require.NoError(t, s.AddSale(sale(t, amy, "Pen", "2023-08-03", "bulk")))
	require.NoError(t, s.AddSale(sale(t, ben, "Ink", "2023-08-01", "bulk")))
	require.NoError(t, s.AddSale(sale(t, cal, "Pad", "2023-08-02")))

	require.Equal(t, 2, s.CountByContactTag("vip"))

	tagged := s.SalesByTag("bulk")
	require.Len(t, tagged, 2)
	require.Equal(t, "Ink", tagged[0].Item.String(), "date order")
}

func TestResetAndClear(t *testing.T) {
	s := New()
	amy := person(t, "Amy", "vip")
	s.Reset([]models.Person{amy}, nil, nil, nil, nil, []models.TagName{"promo"})

	require.Equal(t, 1, s.Size(models.GroupContact))
	require.Equal(t, []models.TagName{"vip"}, s.ContactTags(), "record tags absorbed")
	require.Equal(t, []models.TagName{"promo"}, s.SaleTags())

	s.Clear()
	require.Equal(t, 0, s.Size(models.GroupContact))
	require.Empty(t, s.ContactTags())
	require.Empty(t, s.SaleTags())
}

func TestDeleteInvalidLeavesStoreUnchanged(t *testing.T) {
	s := New()
	amy := person(t, "Amy")
	require.NoError(t, s.AddPerson(amy))

	require.ErrorIs(t, s.RemovePerson(person(t, "Ghost")), apperr.ErrNotFound)
	require.Equal(t, 1, s.Size(models.GroupContact))
}
