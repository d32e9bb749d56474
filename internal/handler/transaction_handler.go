package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	appmw "github.com/shinyyama/harvestx-backend/internal/middleware"
	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/service"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	svc service.TransactionService
	log *zap.Logger
}

func NewTransactionHandler(svc service.TransactionService, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{svc: svc, log: log}
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	OfferID     string  `json:"offerId"`
	RequestID   string  `json:"requestId"`
	FarmerUID   string  `json:"farmerUid"`
	InvestorUID string  `json:"investorUid"`
	Quantity    uint64  `json:"quantity"`
	PricePerKg  float64 `json:"pricePerKg"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	TokenizedAt *string `json:"tokenizedAt"`
}

// ListSales lists transactions where the caller is the farmer.
func (h *TransactionHandler) ListSales(c echo.Context) error {
	txns, err := h.svc.ListByFarmer(c.Request().Context(), appmw.UID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toTransactionResponses(txns))
}

// ListInvestments lists transactions where the caller is the investor.
func (h *TransactionHandler) ListInvestments(c echo.Context) error {
	txns, err := h.svc.ListByInvestor(c.Request().Context(), appmw.UID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toTransactionResponses(txns))
}

func toTransactionResponses(txns []model.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		resp = append(resp, TransactionResponse{
			ID:          t.ID,
			OfferID:     t.OfferID,
			RequestID:   t.RequestID,
			FarmerUID:   t.FarmerUID,
			InvestorUID: t.InvestorUID,
			Quantity:    t.Quantity,
			PricePerKg:  t.PricePerKg,
			TotalAmount: t.TotalAmount,
			Status:      string(t.Status),
			CreatedAt:   formatTime(t.CreatedAt),
			UpdatedAt:   formatTime(t.UpdatedAt),
			TokenizedAt: formatTimePtr(t.TokenizedAt),
		})
	}
	return resp
}
