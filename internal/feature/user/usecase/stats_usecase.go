package usecase

import (
	"context"
	"fmt"
	"time"
)

// MonthCount is the number of registrations in one calendar month (1-12).
type MonthCount struct {
	Month int
	Count int64
}

// WeekCount is the number of registrations in one week of the year.
type WeekCount struct {
	Week  int
	Count int64
}

// StatsUsecase computes registration statistics for the dashboard.
// Buckets are computed in UTC.
type StatsUsecase struct {
	stats StatsRepository
	now   func() time.Time
}

// NewStatsUsecase creates a StatsUsecase.
func NewStatsUsecase(stats StatsRepository) *StatsUsecase {
	return &StatsUsecase{stats: stats, now: time.Now}
}

// RegisteredPerMonth returns one entry per month of the current year that had registrations, ordered by month.
func (u *StatsUsecase) RegisteredPerMonth(ctx context.Context) ([]MonthCount, error) {
	created, err := u.currentYear(ctx)
	if err != nil {
		return nil, err
	}
	var buckets [13]int64
	for _, t := range created {
		buckets[t.UTC().Month()]++
	}
	out := make([]MonthCount, 0, 12)
	for m := 1; m <= 12; m++ {
		if buckets[m] > 0 {
			out = append(out, MonthCount{Month: m, Count: buckets[m]})
		}
	}
	return out, nil
}

// WeeklyRegistersCount returns the registrations of the latest week of the
// current year that had any. Weeks start on Sunday; days before the first
// Sunday of the year are week 0. The result is empty when no one registered this year.
func (u *StatsUsecase) WeeklyRegistersCount(ctx context.Context) ([]WeekCount, error) {
	created, err := u.currentYear(ctx)
	if err != nil {
		return nil, err
	}
	latest, count := -1, int64(0)
	for _, t := range created {
		w := WeekOfYear(t)
		switch {
		case w > latest:
			latest, count = w, 1
		case w == latest:
			count++
		}
	}
	if latest < 0 {
		return []WeekCount{}, nil
	}
	return []WeekCount{{Week: latest, Count: count}}, nil
}

// TotalRegistered counts every stored account, including deleted and inactive ones.
func (u *StatsUsecase) TotalRegistered(ctx context.Context) (int64, error) {
	n, err := u.stats.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// WeekOfYear returns the Sunday-based week number of t in UTC, in the range 0-53.
func WeekOfYear(t time.Time) int {
	t = t.UTC()
	yday := t.YearDay() - 1
	return (yday + 7 - int(t.Weekday())) / 7
}

func (u *StatsUsecase) currentYear(ctx context.Context) ([]time.Time, error) {
	year := u.now().UTC().Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	created, err := u.stats.CreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}
	return created, nil
}
