package api

import (
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/stats"
)

// ExecuteRequest is the request body for running a command line.
type ExecuteRequest struct {
	Command string `json:"command"`
}

// ExecuteResponse reports the outcome of a command.
type ExecuteResponse struct {
	Feedback string            `json:"feedback"`
	Exit     bool              `json:"exit,omitempty"`
	ShowHelp bool              `json:"show_help,omitempty"`
	Cleared  bool              `json:"cleared,omitempty"`
	Mutated  []string          `json:"mutated,omitempty"`
	Report   []MonthlyCountDTO `json:"report,omitempty"`
}

// ContactDTO is one contact in a list response.
type ContactDTO struct {
	Index int      `json:"index"`
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

// MeetingDTO is one meeting in a list response.
type MeetingDTO struct {
	Index   int    `json:"index"`
	Contact string `json:"contact"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// ReminderDTO is one reminder in a list response.
type ReminderDTO struct {
	Index   int    `json:"index"`
	Contact string `json:"contact"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// SaleDTO is one sale in a list response.
type SaleDTO struct {
	Index     int      `json:"index"`
	Contact   string   `json:"contact"`
	Item      string   `json:"item"`
	Date      string   `json:"date"`
	UnitPrice string   `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Tags      []string `json:"tags"`
}

// TagListResponse carries both tag namespaces.
type TagListResponse struct {
	ContactTags []string `json:"contact_tags"`
	SaleTags    []string `json:"sale_tags"`
}

// MonthlyCountDTO is one month of a statistics report.
type MonthlyCountDTO struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

func executeResponse(res *command.Result) ExecuteResponse {
	out := ExecuteResponse{
		Feedback: res.Feedback,
		Exit:     res.Exit,
		ShowHelp: res.ShowHelp,
		Cleared:  res.Cleared,
	}
	for _, g := range res.Mutated {
		out.Mutated = append(out.Mutated, string(g))
	}
	if res.Report != nil {
		out.Report = monthlyCountDTOs(*res.Report)
	}
	return out
}

func monthlyCountDTOs(set stats.MonthlyCountSet) []MonthlyCountDTO {
	out := make([]MonthlyCountDTO, len(set.Counts))
	for i, c := range set.Counts {
		out[i] = MonthlyCountDTO{Month: c.Month.String(), Count: c.Count}
	}
	return out
}

func contactDTOs(persons []models.Person) []ContactDTO {
	out := make([]ContactDTO, len(persons))
	for i, p := range persons {
		out[i] = ContactDTO{
			Index: i + 1,
			Name:  p.Name.String(),
			Phone: p.Phone.String(),
			Email: p.Email.String(),
			Tags:  tagStrings(p.Tags),
		}
	}
	return out
}

func meetingDTOs(meetings []models.Meeting) []MeetingDTO {
	out := make([]MeetingDTO, len(meetings))
	for i, m := range meetings {
		out[i] = MeetingDTO{
			Index:   i + 1,
			Contact: m.Contact.Name.String(),
			Message: m.Message.String(),
			Date:    m.Date.String(),
		}
	}
	return out
}

func reminderDTOs(reminders []models.Reminder) []ReminderDTO {
	out := make([]ReminderDTO, len(reminders))
	for i, r := range reminders {
		out[i] = ReminderDTO{
			Index:   i + 1,
			Contact: r.Contact.Name.String(),
			Message: r.Message.String(),
			Date:    r.Date.String(),
		}
	}
	return out
}

func saleDTOs(sales []models.Sale) []SaleDTO {
	out := make([]SaleDTO, len(sales))
	for i, s := range sales {
		out[i] = SaleDTO{
			Index:     i + 1,
			Contact:   s.Contact.Name.String(),
			Item:      s.Item.String(),
			Date:      s.Date.String(),
			UnitPrice: s.Price.String(),
			Quantity:  int(s.Qty),
			Tags:      tagStrings(s.Tags),
		}
	}
	return out
}

func tagStrings(tags []models.TagName) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}
