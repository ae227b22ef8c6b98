// Package domain holds the dashboard snapshot and the arithmetic used to derive it.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// RecentActivityLimit bounds each activity list.
const RecentActivityLimit = 5

type ActivityType string

const (
	ActivityInvoice  ActivityType = "invoice"
	ActivityCustomer ActivityType = "customer"
)

// CustomerActivityStatus is the fixed status carried by customer activities.
const CustomerActivityStatus = "success"

type Revenue struct {
	Current  float64
	Previous float64
	Change   float64
	Total    float64
}

type CustomerKPI struct {
	Total  int64
	Active int64
	New    int64
	Change float64
}

type InvoiceKPI struct {
	Total       int64
	Paid        int64
	Pending     int64
	PaymentRate float64
}

// PipelineStage aggregates the leads sitting in one status.
type PipelineStage struct {
	Count int64
	Value float64
}

type LeadKPI struct {
	Total          int64
	Open           int64
	Won            int64
	ConversionRate float64
	Pipeline       map[string]PipelineStage
}

type InventoryKPI struct {
	TotalProducts int64
	LowStock      int64
}

type KPIs struct {
	Revenue   Revenue
	Customers CustomerKPI
	Invoices  InvoiceKPI
	Leads     LeadKPI
	Inventory InventoryKPI
}

// Activity is the uniform envelope for recent invoices and customers.
type Activity struct {
	ID          string
	Type        ActivityType
	Title       string
	Description string
	Date        time.Time
	Status      string
}

type Activities struct {
	Invoices  []Activity
	Customers []Activity
}

// LeadGroup is one raw group-by-status row. Value is nil when no lead in the group carries one.
type LeadGroup struct {
	Status string
	Count  int64
	Value  *float64
}

// MonthlyRevenuePoint is reserved for the revenue time series, which is not computed yet.
type MonthlyRevenuePoint struct {
	Month string
	Total float64
}

type Charts struct {
	MonthlyRevenue []MonthlyRevenuePoint
	LeadConversion []LeadGroup
}

// Dashboard is one point-in-time analytics snapshot.
type Dashboard struct {
	KPIs       KPIs
	Activities Activities
	Charts     Charts
}

// EmptyDashboard is the all-zero snapshot served when any read fails.
func EmptyDashboard() Dashboard {
	return Dashboard{
		KPIs: KPIs{
			Leads: LeadKPI{Pipeline: map[string]PipelineStage{}},
		},
		Activities: Activities{
			Invoices:  []Activity{},
			Customers: []Activity{},
		},
		Charts: Charts{
			MonthlyRevenue: []MonthlyRevenuePoint{},
			LeadConversion: []LeadGroup{},
		},
	}
}

// PercentChange returns (current-previous)/previous*100, or 0 when previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Percentage returns part/whole*100, or 0 when whole is not positive.
func Percentage(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Pipeline folds group rows into a status-keyed map; a missing value sum counts as 0.
func Pipeline(groups []LeadGroup) map[string]PipelineStage {
	out := make(map[string]PipelineStage, len(groups))
	for _, g := range groups {
		stage := PipelineStage{Count: g.Count}
		if g.Value != nil {
			stage.Value = *g.Value
		}
		out[g.Status] = stage
	}
	return out
}

// MonthBoundaries returns the start of now's month and the start of the month before, in now's location.
func MonthBoundaries(now time.Time) (startOfMonth, startOfLastMonth time.Time) {
	startOfMonth = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth = startOfMonth.AddDate(0, -1, 0)
	return startOfMonth, startOfLastMonth
}

// RecentInvoice is the invoice slice read for the activity feed.
type RecentInvoice struct {
	ID           string
	Number       string
	CustomerName string
	Total        float64
	Status       string
	CreatedAt    time.Time
}

// RecentCustomer is the customer slice read for the activity feed.
type RecentCustomer struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// InvoiceActivity renders an invoice as "Invoice <number>" / "<customer> - $<total>".
func InvoiceActivity(inv RecentInvoice) Activity {
	return Activity{
		ID:          inv.ID,
		Type:        ActivityInvoice,
		Title:       "Invoice " + inv.Number,
		Description: inv.CustomerName + " - $" + strconv.FormatFloat(inv.Total, 'f', -1, 64),
		Date:        inv.CreatedAt,
		Status:      strings.ToLower(inv.Status),
	}
}

func CustomerActivity(c RecentCustomer) Activity {
	return Activity{
		ID:          c.ID,
		Type:        ActivityCustomer,
		Title:       "New customer",
		Description: c.Name,
		Date:        c.CreatedAt,
		Status:      CustomerActivityStatus,
	}
}
