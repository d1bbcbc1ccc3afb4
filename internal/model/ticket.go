package model

import "fmt"

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusCompleted  TicketStatus = "Completed"
)

type RequestType string

const (
	RequestTypeNew      RequestType = "New"
	RequestTypeFollowUp RequestType = "Follow-up"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// TimeLayout is the fixed format for DateSubmitted (server-local time).
const TimeLayout = "2006-01-02 15:04:05"

// SummaryLimit is the maximum rune count kept from the issue description.
const SummaryLimit = 5000

// DefaultSections is the built-in department/section list. Treated as
// configuration data: deployments override it via the SECTIONS env var.
var DefaultSections = []string{
	"Dentistry and Oral Health", "Ophthalmology", "Orthopaedic",
	"Pediatric Surgery", "Podiatry", "Transplant Surgery",
	"Vascular Surgery", "General Surgery", "Oral and Maxillofacial",
	"Otolaryngology", "Plastic Surgery", "Thoracic Surgery", "Urology",
}

// Ticket is one row of the persisted table.
type Ticket struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	RequestType   RequestType  `json:"request_type"`
	Email         string       `json:"email"`
	Section       string       `json:"section"`
	Status        TicketStatus `json:"status"`
	Priority      Priority     `json:"priority"`
	DateSubmitted string       `json:"date_submitted"`
	Summary       string       `json:"summary"`
}

// NextID derives the id for a new ticket from the current row count.
// IDs are 1-based positions at creation time; after a reset the counter
// starts over and ids are reused. That reuse is inherited behavior the
// rest of the system depends on being reproducible.
func NextID(rowCount int) string {
	return fmt.Sprintf("T%d", rowCount+1)
}

// Summarize truncates an issue description to SummaryLimit runes.
func Summarize(issue string) string {
	r := []rune(issue)
	if len(r) <= SummaryLimit {
		return issue
	}
	return string(r[:SummaryLimit])
}

func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusCompleted:
		return true
	}
	return false
}

func ValidRequestType(t RequestType) bool {
	return t == RequestTypeNew || t == RequestTypeFollowUp
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
