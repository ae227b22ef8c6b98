package erpserver

import "github.com/Apurer/erpflow/internal/shared/projection"

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func fromPagination(p projection.Pagination) Pagination {
	return Pagination{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}
