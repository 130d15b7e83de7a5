package command

import (
	"time"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/stats"
	"github.com/verlow/clientele/internal/store"
)

// AddSale records a sale to the contact at ContactIndex.
type AddSale struct {
	ContactIndex models.Index
	Item         models.ItemName
	Date         models.DateTime
	Price        models.UnitPrice
	Qty          models.Quantity
	Tags         []models.TagName
}

func (c AddSale) Execute(s *store.Store) (*Result, error) {
	contact, err := resolvePerson(s, c.ContactIndex)
	if err != nil {
		return nil, err
	}
	sale := models.NewSale(contact, c.Item, c.Date, c.Price, c.Qty, c.Tags)
	if err := s.AddSale(sale); err != nil {
		return nil, apperr.CommandWrap(err, MsgDuplicateSale)
	}
	return mutated(models.GroupSale, "New sale added: %s", sale), nil
}

// DeleteSale removes the sale at a display index. Indexes resolve
// against the full date-ordered list so an active listing filter never
// shifts the target.
type DeleteSale struct {
	Index models.Index
}

func (c DeleteSale) Execute(s *store.Store) (*Result, error) {
	sales := s.AllSales()
	if c.Index.ZeroBased() >= len(sales) {
		return nil, apperr.Command(MsgInvalidSaleIndex)
	}
	target := sales[c.Index.ZeroBased()]
	if err := s.RemoveSale(target); err != nil {
		return nil, apperr.CommandWrap(err, MsgInvalidSaleIndex)
	}
	return mutated(models.GroupSale, "Deleted sale: %s", target), nil
}

// ListSales shows all sales, or only those of the contact at
// ContactIndex when one is given.
type ListSales struct {
	ContactIndex *models.Index
}

func (c ListSales) Execute(s *store.Store) (*Result, error) {
	if c.ContactIndex == nil {
		s.SetSaleFilter(nil)
		return feedback("Listed all %d sales", len(s.Sales())), nil
	}
	contact, err := resolvePerson(s, *c.ContactIndex)
	if err != nil {
		return nil, err
	}
	s.SetSaleFilter(func(sale models.Sale) bool {
		return sale.Contact.Equals(contact)
	})
	return feedback("Listed %d sales for %s", len(s.Sales()), contact.Name), nil
}

// SaleStats attaches a monthly sale-count report for the trailing
// Months months.
type SaleStats struct {
	Months int
}

func (c SaleStats) Execute(s *store.Store) (*Result, error) {
	if c.Months < stats.MinMonths || c.Months > stats.MaxMonths {
		return nil, apperr.Command("the number of months must be between %d and %d", stats.MinMonths, stats.MaxMonths)
	}
	report := stats.CountSales(s.AllSalesCanonical(), c.Months, time.Now())
	res := feedback("Sales in the last %d month(s):\n%s", c.Months, report)
	res.Report = &report
	return res, nil
}
