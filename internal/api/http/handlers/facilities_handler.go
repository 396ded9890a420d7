package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reservation-service/internal/api/dto"
	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/service"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

// FacilitiesHandler manages the facility catalog endpoints.
type FacilitiesHandler struct {
	service *service.FacilityService
}

// NewFacilitiesHandler constructs handler.
func NewFacilitiesHandler(facilityService *service.FacilityService) *FacilitiesHandler {
	return &FacilitiesHandler{service: facilityService}
}

// List GET /api/facilities.
func (h *FacilitiesHandler) List(c *fiber.Ctx) error {
	facilities, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": facilityResponses(facilities)})
}

// Search GET /api/facilities/search.
func (h *FacilitiesHandler) Search(c *fiber.Ctx) error {
	var name *string
	if q := c.Query("name"); q != "" {
		name = &q
	}
	var minCapacity *int
	if q := c.Query("minCapacity"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 0 {
			return apperrors.NewValidationError("invalid minCapacity", map[string]any{"minCapacity": q})
		}
		minCapacity = &parsed
	}

	facilities, err := h.service.Search(c.UserContext(), name, minCapacity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": facilityResponses(facilities)})
}

// GetByID GET /api/facilities/:id.
func (h *FacilitiesHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	facility, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFacilityResponse(facility)})
}

// Create POST /api/facilities.
func (h *FacilitiesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.FacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	facility, err := h.service.Create(c.UserContext(), principal, facilityInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewFacilityResponse(facility)})
}

// Update PUT /api/facilities/:id.
func (h *FacilitiesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.FacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	facility, err := h.service.Update(c.UserContext(), principal, id, facilityInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFacilityResponse(facility)})
}

// Delete DELETE /api/facilities/:id.
func (h *FacilitiesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func facilityInput(req dto.FacilityRequest) service.FacilityInput {
	return service.FacilityInput{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}
}

func facilityResponses(facilities []domain.Facility) []dto.FacilityResponse {
	items := make([]dto.FacilityResponse, 0, len(facilities))
	for i := range facilities {
		items = append(items, dto.NewFacilityResponse(&facilities[i]))
	}
	return items
}
