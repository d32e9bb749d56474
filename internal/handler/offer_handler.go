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

type OfferHandler struct {
	svc service.OfferService
	log *zap.Logger
}

func NewOfferHandler(svc service.OfferService, log *zap.Logger) *OfferHandler {
	return &OfferHandler{svc: svc, log: log}
}

type OfferResponse struct {
	ID                string  `json:"id"`
	FarmerUID         string  `json:"farmerUid"`
	ProductName       string  `json:"productName"`
	ProductType       string  `json:"productType"`
	ProductTypeOther  string  `json:"productTypeOther,omitempty"`
	Description       string  `json:"description"`
	HarvestDate       string  `json:"harvestDate"`
	Location          string  `json:"location"`
	QualityGrade      string  `json:"qualityGrade"`
	QualityCertifier  string  `json:"qualityCertifier,omitempty"`
	TotalQuantity     uint64  `json:"totalQuantity"`
	AvailableQuantity uint64  `json:"availableQuantity"`
	PricePerKg        float64 `json:"pricePerKg"`
	MinimumInvestment uint64  `json:"minimumInvestment"`
	ImageURL          *string `json:"imageUrl"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

type CreateOfferRequest struct {
	ProductName       string  `json:"productName"`
	ProductType       string  `json:"productType"`
	ProductTypeOther  string  `json:"productTypeOther"`
	Description       string  `json:"description"`
	HarvestDate       string  `json:"harvestDate"`
	Location          string  `json:"location"`
	QualityGrade      string  `json:"qualityGrade"`
	QualityCertifier  string  `json:"qualityCertifier"`
	TotalQuantity     uint64  `json:"totalQuantity"`
	PricePerKg        float64 `json:"pricePerKg"`
	MinimumInvestment uint64  `json:"minimumInvestment"`
	ImageURL          *string `json:"imageUrl"`
}

func (h *OfferHandler) Create(c echo.Context) error {
	var req CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	pt, err := model.ParseProductType(req.ProductType)
	if err != nil {
		return fail(c, h.log, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
	}
	grade, err := model.ParseQualityGrade(req.QualityGrade)
	if err != nil {
		return fail(c, h.log, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
	}
	o, err := h.svc.Create(c.Request().Context(), appmw.UID(c), service.CreateOfferInput{
		ProductName:       req.ProductName,
		ProductType:       pt,
		ProductTypeOther:  req.ProductTypeOther,
		Description:       req.Description,
		HarvestDate:       req.HarvestDate,
		Location:          req.Location,
		QualityGrade:      grade,
		QualityCertifier:  req.QualityCertifier,
		TotalQuantity:     req.TotalQuantity,
		PricePerKg:        req.PricePerKg,
		MinimumInvestment: req.MinimumInvestment,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusCreated, toOfferResponse(o))
}

func (h *OfferHandler) ListActive(c echo.Context) error {
	offers, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toOfferResponses(offers))
}

func (h *OfferHandler) ListMine(c echo.Context) error {
	offers, err := h.svc.ListByFarmer(c.Request().Context(), appmw.UID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toOfferResponses(offers))
}

func (h *OfferHandler) Get(c echo.Context) error {
	o, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, h.log, err)
	}
	if o == nil {
		return ok(c, http.StatusOK, nil)
	}
	return ok(c, http.StatusOK, toOfferResponse(o))
}

func toOfferResponses(offers []model.Offer) []OfferResponse {
	resp := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		resp = append(resp, toOfferResponse(&offers[i]))
	}
	return resp
}

func toOfferResponse(o *model.Offer) OfferResponse {
	return OfferResponse{
		ID:                o.ID,
		FarmerUID:         o.FarmerUID,
		ProductName:       o.ProductName,
		ProductType:       string(o.ProductType),
		ProductTypeOther:  o.ProductTypeOther,
		Description:       o.Description,
		HarvestDate:       o.HarvestDate,
		Location:          o.Location,
		QualityGrade:      string(o.QualityGrade),
		QualityCertifier:  o.QualityCertifier,
		TotalQuantity:     o.TotalQuantity,
		AvailableQuantity: o.AvailableQuantity,
		PricePerKg:        o.PricePerKg,
		MinimumInvestment: o.MinimumInvestment,
		ImageURL:          o.ImageURL,
		Status:            string(o.Status),
		CreatedAt:         formatTime(o.CreatedAt),
		UpdatedAt:         formatTime(o.UpdatedAt),
	}
}
