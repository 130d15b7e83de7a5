package models

// Group partitions command words and records.
type Group string

// The five record groups.
const (
	GroupContact  Group = "contact"
	GroupMeeting  Group = "meeting"
	GroupReminder Group = "reminder"
	GroupSale     Group = "sale"
	GroupTag      Group = "tag"
)

// Groups lists every group in display order.
func Groups() []Group {
	return []Group{GroupContact, GroupMeeting, GroupReminder, GroupSale, GroupTag}
}
