package handler

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/domain/entity"
	"safeline/internal/usecase"
	"safeline/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

type profileRequest struct {
	Name     string `json:"name" validate:"required"`
	CNIC     string `json:"cnic"`
	Email    string `json:"email" validate:"omitempty,email"`
	District string `json:"district"`
	Gender   string `json:"gender"`
	Age      string `json:"age"`
	Address  string `json:"address"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	phone := c.Get("phone").(string)

	profile, err := h.profileUseCase.Get(c.Request().Context(), phone)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

// SaveProfile replaces the caller's profile document wholesale.
func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	phone := c.Get("phone").(string)
	profile := &entity.Profile{
		Name:     req.Name,
		CNIC:     req.CNIC,
		Email:    req.Email,
		District: req.District,
		Gender:   req.Gender,
		Age:      req.Age,
		Address:  req.Address,
	}

	if err := h.profileUseCase.Save(c.Request().Context(), phone, profile); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
