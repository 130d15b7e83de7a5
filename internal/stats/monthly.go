// Package stats computes trailing-month count reports over dated
// records (sales and meetings).
package stats

import (
	"fmt"
	"time"

	"github.com/verlow/clientele/internal/models"
)

// Window bounds for a monthly report.
const (
	MinMonths = 1
	MaxMonths = 12
)

// MonthAndYear identifies one calendar month.
type MonthAndYear struct {
	Month time.Month
	Year  int
}

func (m MonthAndYear) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// previous returns the month before m.
func (m MonthAndYear) previous() MonthAndYear {
	if m.Month == time.January {
		return MonthAndYear{Month: time.December, Year: m.Year - 1}
	}
	return MonthAndYear{Month: m.Month - 1, Year: m.Year}
}

// MonthlyCount pairs a month with the number of records dated in it.
type MonthlyCount struct {
	Month MonthAndYear
	Count int
}

// MonthlyCountSet is a report over consecutive months, oldest first.
type MonthlyCountSet struct {
	Counts []MonthlyCount
}

// CountSales builds a report of sale counts for the trailing months
// ending at `now`'s month inclusive. months must be within
// [MinMonths, MaxMonths]; out-of-range requests return an empty set.
func CountSales(sales []models.Sale, months int, now time.Time) MonthlyCountSet {
	dates := make([]models.DateTime, len(sales))
	for i, s := range sales {
		dates[i] = s.Date
	}
	return countByMonth(dates, months, now)
}

// CountMeetings builds the equivalent report over meetings.
func CountMeetings(meetings []models.Meeting, months int, now time.Time) MonthlyCountSet {
	dates := make([]models.DateTime, len(meetings))
	for i, m := range meetings {
		dates[i] = m.Date
	}
	return countByMonth(dates, months, now)
}

func countByMonth(dates []models.DateTime, months int, now time.Time) MonthlyCountSet {
	if months < MinMonths || months > MaxMonths {
		return MonthlyCountSet{}
	}

	trailing := make([]MonthAndYear, months)
	m := MonthAndYear{Month: now.Month(), Year: now.Year()}
	for i := months - 1; i >= 0; i-- {
		trailing[i] = m
		m = m.previous()
	}

	counts := make(map[MonthAndYear]int, months)
	for _, d := range dates {
		t := d.Time()
		counts[MonthAndYear{Month: t.Month(), Year: t.Year()}]++
	}

	set := MonthlyCountSet{Counts: make([]MonthlyCount, months)}
	for i, my := range trailing {
		set.Counts[i] = MonthlyCount{Month: my, Count: counts[my]}
	}
	return set
}

// String renders one line per month, oldest first.
func (s MonthlyCountSet) String() string {
	out := ""
	for _, c := range s.Counts {
		out += fmt.Sprintf("%s: %d\n", c.Month, c.Count)
	}
	return out
}
