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

type UserHandler struct {
	svc service.UserService
	log *zap.Logger
}

func NewUserHandler(svc service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type UserResponse struct {
	UID         string `json:"uid"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type RegisterUserRequest struct {
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	role, err := model.ParseUserRole(req.Role)
	if err != nil {
		return fail(c, h.log, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
	}
	u, err := h.svc.Register(c.Request().Context(), appmw.UID(c), role, req.DisplayName, req.Email)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusCreated, toUserResponse(u))
}

// Me answers with null data when the caller has not registered yet.
func (h *UserHandler) Me(c echo.Context) error {
	u, err := h.svc.GetCurrent(c.Request().Context(), appmw.UID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	if u == nil {
		return ok(c, http.StatusOK, nil)
	}
	return ok(c, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	role, err := model.ParseUserRole(req.Role)
	if err != nil {
		return fail(c, h.log, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
	}
	u, err := h.svc.UpdateRole(c.Request().Context(), appmw.UID(c), c.Param("uid"), role)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.ListAll(c.Request().Context(), appmw.UID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return ok(c, http.StatusOK, resp)
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		UID:         u.UID,
		Role:        string(u.Role),
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   formatTime(u.CreatedAt),
		UpdatedAt:   formatTime(u.UpdatedAt),
	}
}
