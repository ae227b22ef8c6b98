package erpserver

import (
	"strings"
	"time"

	leaddomain "github.com/Apurer/erpflow/internal/domains/leads/domain"
	leadports "github.com/Apurer/erpflow/internal/domains/leads/ports"
)

type CreateLeadRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          string   `json:"phone,omitempty"`
	Company        string   `json:"company,omitempty"`
	Status         string   `json:"status,omitempty" binding:"omitempty,oneof=NEW CONTACTED QUALIFIED PROPOSAL NEGOTIATION CLOSED_WON CLOSED_LOST"`
	Priority       string   `json:"priority,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Source         string   `json:"source,omitempty"`
	Value          *float64 `json:"value,omitempty" binding:"omitempty,gt=0"`
	CustomerID     string   `json:"customerId,omitempty"`
	AssignedUserID string   `json:"assignedUserId,omitempty"`
}

type LeadCustomer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
}

type LeadCounts struct {
	Interactions int64 `json:"interactions"`
}

type LeadInteraction struct {
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Date    time.Time `json:"date"`
}

type Lead struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          *string           `json:"phone"`
	Company        *string           `json:"company"`
	Status         string            `json:"status"`
	Source         *string           `json:"source"`
	Value          *float64          `json:"value"`
	Priority       string            `json:"priority"`
	CustomerID     *string           `json:"customerId"`
	AssignedUserID *string           `json:"assignedUserId"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Customer       *LeadCustomer     `json:"customer"`
	Count          *LeadCounts       `json:"_count,omitempty"`
	Interactions   []LeadInteraction `json:"interactions,omitempty"`
}

type StatusCountField struct {
	Status int64 `json:"status"`
}

type ValueSumField struct {
	Value *float64 `json:"value"`
}

// LeadStat is one group-by-status row, shaped like the pipeline chart expects.
type LeadStat struct {
	Status string           `json:"status"`
	Count  StatusCountField `json:"_count"`
	Sum    ValueSumField    `json:"_sum"`
}

type LeadList struct {
	Leads      []Lead     `json:"leads"`
	Stats      []LeadStat `json:"stats"`
	Pagination Pagination `json:"pagination"`
}

func fromLead(l *leaddomain.Lead) Lead {
	out := Lead{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          optionalString(l.Phone),
		Company:        optionalString(l.Company),
		Status:         string(l.Status),
		Source:         optionalString(l.Source),
		Value:          l.Value,
		Priority:       string(l.Priority),
		CustomerID:     l.CustomerID,
		AssignedUserID: l.AssignedUserID,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if l.Customer != nil {
		out.Customer = &LeadCustomer{
			Name:    l.Customer.Name,
			Email:   l.Customer.Email,
			Company: optionalString(l.Customer.Company),
		}
	}
	return out
}

func fromLeadListResult(result leadports.ListResult) LeadList {
	out := LeadList{
		Leads:      make([]Lead, 0, len(result.Page.Items)),
		Stats:      make([]LeadStat, 0, len(result.Stats)),
		Pagination: fromPagination(result.Page.Pagination),
	}
	for _, l := range result.Page.Items {
		dto := fromLead(l)
		dto.Count = &LeadCounts{Interactions: l.InteractionCount}
		dto.Interactions = make([]LeadInteraction, 0, len(l.RecentInteractions))
		for _, i := range l.RecentInteractions {
			dto.Interactions = append(dto.Interactions, LeadInteraction{Type: string(i.Type), Subject: i.Subject, Date: i.Date})
		}
		out.Leads = append(out.Leads, dto)
	}
	for _, s := range result.Stats {
		out.Stats = append(out.Stats, newLeadStat(string(s.Status), s.Count, s.Value))
	}
	return out
}

func newLeadStat(status string, count int64, value *float64) LeadStat {
	return LeadStat{
		Status: status,
		Count:  StatusCountField{Status: count},
		Sum:    ValueSumField{Value: value},
	}
}

func toLeadCreateInput(p CreateLeadRequest) leadports.CreateInput {
	return leadports.CreateInput{
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Company:        p.Company,
		Status:         leaddomain.Status(strings.ToUpper(p.Status)),
		Priority:       leaddomain.Priority(strings.ToUpper(p.Priority)),
		Source:         p.Source,
		Value:          p.Value,
		CustomerID:     p.CustomerID,
		AssignedUserID: p.AssignedUserID,
	}
}
