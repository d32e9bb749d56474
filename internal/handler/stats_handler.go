package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/harvestx-backend/internal/service"
	"go.uber.org/zap"
)

type StatsHandler struct {
	svc service.StatsService
	log *zap.Logger
}

func NewStatsHandler(svc service.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

type StatsResponse struct {
	TotalUsers        uint64 `json:"totalUsers"`
	TotalOffers       uint64 `json:"totalOffers"`
	TotalRequests     uint64 `json:"totalRequests"`
	TotalTransactions uint64 `json:"totalTransactions"`
	ActiveOffers      uint64 `json:"activeOffers"`
}

func (h *StatsHandler) Get(c echo.Context) error {
	st, err := h.svc.Platform(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, StatsResponse{
		TotalUsers:        st.TotalUsers,
		TotalOffers:       st.TotalOffers,
		TotalRequests:     st.TotalRequests,
		TotalTransactions: st.TotalTransactions,
		ActiveOffers:      st.ActiveOffers,
	})
}
