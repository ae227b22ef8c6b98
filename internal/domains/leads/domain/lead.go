package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is a stage of the sales pipeline.
type Status string

const (
	StatusNew         Status = "NEW"
	StatusContacted   Status = "CONTACTED"
	StatusQualified   Status = "QUALIFIED"
	StatusProposal    Status = "PROPOSAL"
	StatusNegotiation Status = "NEGOTIATION"
	StatusClosedWon   Status = "CLOSED_WON"
	StatusClosedLost  Status = "CLOSED_LOST"
)

// OpenStatuses are the pipeline stages that have not been closed either way.
var OpenStatuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusProposal, StatusNegotiation}

// Priority ranks how urgently a lead should be worked.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var (
	ErrEmptyName        = errors.New("name is required")
	ErrInvalidEmail     = errors.New("email must be a valid address")
	ErrNonPositiveValue = errors.New("value must be positive")
	ErrInvalidStatus    = errors.New("invalid lead status")
	ErrInvalidPriority  = errors.New("invalid lead priority")
)

// ParseStatus accepts a status name in any case.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case StatusNew, StatusContacted, StatusQualified, StatusProposal, StatusNegotiation, StatusClosedWon, StatusClosedLost:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// ParsePriority accepts a priority name in any case.
func ParsePriority(raw string) (Priority, error) {
	priority := Priority(strings.ToUpper(strings.TrimSpace(raw)))
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return priority, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
}

// CustomerRef is the customer slice embedded in lead reads.
type CustomerRef struct {
	Name    string
	Email   string
	Company string
}

// Lead is a sales opportunity moving through the pipeline.
type Lead struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Company        string
	Status         Status
	Source         string
	Value          *float64
	Priority       Priority
	CustomerID     *string
	AssignedUserID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Populated on reads.
	Customer           *CustomerRef
	InteractionCount   int64
	RecentInteractions []Interaction
}

// NewLead builds a lead in the NEW stage ensuring required invariants.
func NewLead(id, name, email string) (*Lead, error) {
	l := &Lead{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Status:   StatusNew,
		Priority: PriorityMedium,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate re-applies core invariants for persistence.
func (l *Lead) Validate() error {
	if l.Name == "" {
		return ErrEmptyName
	}
	at := strings.Index(l.Email, "@")
	if at <= 0 || at == len(l.Email)-1 {
		return ErrInvalidEmail
	}
	if l.Value != nil && *l.Value <= 0 {
		return ErrNonPositiveValue
	}
	if _, err := ParseStatus(string(l.Status)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(l.Priority)); err != nil {
		return err
	}
	return nil
}

// IsOpen reports whether the lead is still being worked.
func (l *Lead) IsOpen() bool {
	for _, s := range OpenStatuses {
		if l.Status == s {
			return true
		}
	}
	return false
}

// InteractionType classifies a touchpoint with a lead.
type InteractionType string

const (
	InteractionCall    InteractionType = "CALL"
	InteractionEmail   InteractionType = "EMAIL"
	InteractionMeeting InteractionType = "MEETING"
	InteractionNote    InteractionType = "NOTE"
)

var ErrInvalidInteraction = errors.New("invalid interaction")

// Interaction records one touchpoint with a lead.
type Interaction struct {
	ID          string
	LeadID      string
	Type        InteractionType
	Subject     string
	Description string
	Date        time.Time
}

// NewInteraction validates and builds an interaction.
func NewInteraction(id, leadID string, kind InteractionType, subject, description string, date time.Time) (*Interaction, error) {
	kind = InteractionType(strings.ToUpper(strings.TrimSpace(string(kind))))
	switch kind {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionNote:
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInteraction, kind)
	}
	if strings.TrimSpace(leadID) == "" {
		return nil, fmt.Errorf("%w: leadId is required", ErrInvalidInteraction)
	}
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidInteraction)
	}
	return &Interaction{
		ID:          id,
		LeadID:      leadID,
		Type:        kind,
		Subject:     strings.TrimSpace(subject),
		Description: strings.TrimSpace(description),
		Date:        date,
	}, nil
}

// StatusCount is one row of the pipeline breakdown. Value is nil when no lead in the stage carries one.
type StatusCount struct {
	Status Status
	Count  int64
	Value  *float64
}
