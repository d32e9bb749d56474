package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	appmw "github.com/shinyyama/harvestx-backend/internal/middleware"
	"github.com/shinyyama/harvestx-backend/internal/model"
	"github.com/shinyyama/harvestx-backend/internal/service"
	"go.uber.org/zap"
)

type RequestHandler struct {
	requests   service.RequestService
	settlement service.SettlementService
	log        *zap.Logger
}

func NewRequestHandler(requests service.RequestService, settlement service.SettlementService, log *zap.Logger) *RequestHandler {
	return &RequestHandler{requests: requests, settlement: settlement, log: log}
}

type InvestmentRequestResponse struct {
	ID                string  `json:"id"`
	OfferID           string  `json:"offerId"`
	InvestorUID       string  `json:"investorUid"`
	RequestedQuantity uint64  `json:"requestedQuantity"`
	OfferedPricePerKg float64 `json:"offeredPricePerKg"`
	TotalOffered      float64 `json:"totalOffered"`
	Message           string  `json:"message"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
	ExpiresAt         string  `json:"expiresAt"`
}

type CreateInvestmentRequestRequest struct {
	RequestedQuantity uint64  `json:"requestedQuantity"`
	OfferedPricePerKg float64 `json:"offeredPricePerKg"`
	Message           string  `json:"message"`
}

type RespondRequest struct {
	Accept *bool `json:"accept"`
}

func (h *RequestHandler) Create(c echo.Context) error {
	var req CreateInvestmentRequestRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	r, err := h.requests.Create(c.Request().Context(), appmw.UID(c), service.CreateRequestInput{
		OfferID:           c.Param("id"),
		RequestedQuantity: req.RequestedQuantity,
		OfferedPricePerKg: req.OfferedPricePerKg,
		Message:           req.Message,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusCreated, toInvestmentRequestResponse(r))
}

func (h *RequestHandler) ListForOffer(c echo.Context) error {
	reqs, err := h.requests.ListForOffer(c.Request().Context(), appmw.UID(c), c.Param("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toInvestmentRequestResponses(reqs))
}

func (h *RequestHandler) ListMine(c echo.Context) error {
	reqs, err := h.requests.ListByInvestor(c.Request().Context(), appmw.UID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toInvestmentRequestResponses(reqs))
}

func (h *RequestHandler) Respond(c echo.Context) error {
	var req RespondRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	if req.Accept == nil {
		return fail(c, h.log, fmt.Errorf("%w: accept is required", service.ErrInvalidInput))
	}
	r, err := h.settlement.Respond(c.Request().Context(), appmw.UID(c), c.Param("id"), *req.Accept)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toInvestmentRequestResponse(r))
}

func toInvestmentRequestResponses(reqs []model.InvestmentRequest) []InvestmentRequestResponse {
	resp := make([]InvestmentRequestResponse, 0, len(reqs))
	for i := range reqs {
		resp = append(resp, toInvestmentRequestResponse(&reqs[i]))
	}
	return resp
}

func toInvestmentRequestResponse(r *model.InvestmentRequest) InvestmentRequestResponse {
	return InvestmentRequestResponse{
		ID:                r.ID,
		OfferID:           r.OfferID,
		InvestorUID:       r.InvestorUID,
		RequestedQuantity: r.RequestedQuantity,
		OfferedPricePerKg: r.OfferedPricePerKg,
		TotalOffered:      r.TotalOffered,
		Message:           r.Message,
		Status:            string(r.Status),
		CreatedAt:         formatTime(r.CreatedAt),
		UpdatedAt:         formatTime(r.UpdatedAt),
		ExpiresAt:         formatTime(r.ExpiresAt),
	}
}
