package erpserver

import (
	"time"

	analyticsdomain "github.com/Apurer/erpflow/internal/domains/analytics/domain"
)

type RevenueKPI struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
	Total    float64 `json:"total"`
}

type CustomerKPI struct {
	Total  int64   `json:"total"`
	Active int64   `json:"active"`
	New    int64   `json:"new"`
	Change float64 `json:"change"`
}

type InvoiceKPI struct {
	Total       int64   `json:"total"`
	Paid        int64   `json:"paid"`
	Pending     int64   `json:"pending"`
	PaymentRate float64 `json:"paymentRate"`
}

type PipelineStage struct {
	Count int64   `json:"count"`
	Value float64 `json:"value"`
}

type LeadKPI struct {
	Total          int64                    `json:"total"`
	Open           int64                    `json:"open"`
	Won            int64                    `json:"won"`
	ConversionRate float64                  `json:"conversionRate"`
	Pipeline       map[string]PipelineStage `json:"pipeline"`
}

type InventoryKPI struct {
	TotalProducts int64 `json:"totalProducts"`
	LowStock      int64 `json:"lowStock"`
}

type DashboardKPIs struct {
	Revenue   RevenueKPI   `json:"revenue"`
	Customers CustomerKPI  `json:"customers"`
	Invoices  InvoiceKPI   `json:"invoices"`
	Leads     LeadKPI      `json:"leads"`
	Inventory InventoryKPI `json:"inventory"`
}

type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

type DashboardActivities struct {
	Invoices  []Activity `json:"invoices"`
	Customers []Activity `json:"customers"`
}

type MonthlyRevenue struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type DashboardCharts struct {
	MonthlyRevenue []MonthlyRevenue `json:"monthlyRevenue"`
	LeadConversion []LeadStat       `json:"leadConversion"`
}

type Dashboard struct {
	KPIs       DashboardKPIs       `json:"kpis"`
	Activities DashboardActivities `json:"activities"`
	Charts     DashboardCharts     `json:"charts"`
}

func fromDashboard(d analyticsdomain.Dashboard) Dashboard {
	pipeline := make(map[string]PipelineStage, len(d.KPIs.Leads.Pipeline))
	for status, stage := range d.KPIs.Leads.Pipeline {
		pipeline[status] = PipelineStage{Count: stage.Count, Value: stage.Value}
	}
	monthly := make([]MonthlyRevenue, 0, len(d.Charts.MonthlyRevenue))
	for _, p := range d.Charts.MonthlyRevenue {
		monthly = append(monthly, MonthlyRevenue{Month: p.Month, Total: p.Total})
	}
	conversion := make([]LeadStat, 0, len(d.Charts.LeadConversion))
	for _, g := range d.Charts.LeadConversion {
		conversion = append(conversion, newLeadStat(g.Status, g.Count, g.Value))
	}
	return Dashboard{
		KPIs: DashboardKPIs{
			Revenue: RevenueKPI{
				Current:  d.KPIs.Revenue.Current,
				Previous: d.KPIs.Revenue.Previous,
				Change:   d.KPIs.Revenue.Change,
				Total:    d.KPIs.Revenue.Total,
			},
			Customers: CustomerKPI{
				Total:  d.KPIs.Customers.Total,
				Active: d.KPIs.Customers.Active,
				New:    d.KPIs.Customers.New,
				Change: d.KPIs.Customers.Change,
			},
			Invoices: InvoiceKPI{
				Total:       d.KPIs.Invoices.Total,
				Paid:        d.KPIs.Invoices.Paid,
				Pending:     d.KPIs.Invoices.Pending,
				PaymentRate: d.KPIs.Invoices.PaymentRate,
			},
			Leads: LeadKPI{
				Total:          d.KPIs.Leads.Total,
				Open:           d.KPIs.Leads.Open,
				Won:            d.KPIs.Leads.Won,
				ConversionRate: d.KPIs.Leads.ConversionRate,
				Pipeline:       pipeline,
			},
			Inventory: InventoryKPI{
				TotalProducts: d.KPIs.Inventory.TotalProducts,
				LowStock:      d.KPIs.Inventory.LowStock,
			},
		},
		Activities: DashboardActivities{
			Invoices:  fromActivities(d.Activities.Invoices),
			Customers: fromActivities(d.Activities.Customers),
		},
		Charts: DashboardCharts{
			MonthlyRevenue: monthly,
			LeadConversion: conversion,
		},
	}
}

func fromActivities(in []analyticsdomain.Activity) []Activity {
	out := make([]Activity, 0, len(in))
	for _, a := range in {
		out = append(out, Activity{
			ID:          a.ID,
			Type:        string(a.Type),
			Title:       a.Title,
			Description: a.Description,
			Date:        a.Date,
			Status:      a.Status,
		})
	}
	return out
}
