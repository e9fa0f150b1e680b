package dto

import "account_backend/internal/feature/user/usecase"

// MonthCountResponse is one entry of GET /users/registered-per-month.
type MonthCountResponse struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// WeekCountResponse is one entry of GET /users/weekly-registers-count.
type WeekCountResponse struct {
	Week  int   `json:"week"`
	Count int64 `json:"count"`
}

// TotalRegisteredResponse is the body of GET /users/total-registered.
type TotalRegisteredResponse struct {
	TotalUsers int64 `json:"totalUsers"`
}

// NewMonthCountsResponse converts usecase buckets. An empty input yields an empty array.
func NewMonthCountsResponse(in []usecase.MonthCount) []MonthCountResponse {
	out := make([]MonthCountResponse, 0, len(in))
	for _, m := range in {
		out = append(out, MonthCountResponse{Month: m.Month, Count: m.Count})
	}
	return out
}

// NewWeekCountsResponse converts usecase buckets. An empty input yields an empty array.
func NewWeekCountsResponse(in []usecase.WeekCount) []WeekCountResponse {
	out := make([]WeekCountResponse, 0, len(in))
	for _, w := range in {
		out = append(out, WeekCountResponse{Week: w.Week, Count: w.Count})
	}
	return out
}
