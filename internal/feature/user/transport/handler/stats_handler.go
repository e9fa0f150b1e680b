package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_backend/internal/feature/user/transport/http/dto"
	"account_backend/internal/feature/user/usecase"
	"account_backend/internal/platform/http/httperr"
)

// StatsUsecase は登録統計のユースケースを定義します。
type StatsUsecase interface {
	RegisteredPerMonth(ctx context.Context) ([]usecase.MonthCount, error)
	WeeklyRegistersCount(ctx context.Context) ([]usecase.WeekCount, error)
	TotalRegistered(ctx context.Context) (int64, error)
}

// StatsHandler は管理画面向けの登録統計を返します。
type StatsHandler struct {
	stats StatsUsecase
	log   *zap.Logger
}

// NewStatsHandler はStatsHandlerの新しいインスタンスを生成します。
func NewStatsHandler(stats StatsUsecase, log *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

// RegisteredPerMonth は GET /users/registered-per-month を処理します。
func (h *StatsHandler) RegisteredPerMonth(c *gin.Context) {
	months, err := h.stats.RegisteredPerMonth(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMonthCountsResponse(months))
}

// WeeklyRegistersCount は GET /users/weekly-registers-count を処理します。
func (h *StatsHandler) WeeklyRegistersCount(c *gin.Context) {
	weeks, err := h.stats.WeeklyRegistersCount(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWeekCountsResponse(weeks))
}

// TotalRegistered は GET /users/total-registered を処理します。
func (h *StatsHandler) TotalRegistered(c *gin.Context) {
	total, err := h.stats.TotalRegistered(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotalRegisteredResponse{TotalUsers: total})
}
