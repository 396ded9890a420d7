package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/reservation-service/internal/api/dto"
	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/service"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

// ReservationsHandler manages reservation lifecycle endpoints.
type ReservationsHandler struct {
	service *service.ReservationService
}

// NewReservationsHandler constructs handler.
func NewReservationsHandler(reservationService *service.ReservationService) *ReservationsHandler {
	return &ReservationsHandler{service: reservationService}
}

// Create POST /api/reservations.
func (h *ReservationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReservationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FacilityID <= 0 {
		return apperrors.NewValidationError("facility_id required", nil)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return apperrors.NewValidationError("start_time and end_time required", nil)
	}

	reservation, err := h.service.Create(c.UserContext(), principal, service.ReservationCreateInput{
		FacilityID: req.FacilityID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Purpose:    req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewReservationResponse(reservation)})
}

// List GET /api/reservations. The unfiltered listing is admin-only; a plain
// call from a regular user resolves to their own reservations.
func (h *ReservationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := service.ReservationListFilter{}
	if !principal.IsAdmin() {
		filter.UserID = &principal.ID
	}

	reservations, err := h.service.List(c.UserContext(), principal, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// ListByUser GET /api/reservations/user/:id.
func (h *ReservationsHandler) ListByUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	reservations, err := h.service.List(c.UserContext(), principal, service.ReservationListFilter{UserID: &id})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// ListByFacility GET /api/reservations/facility/:id.
func (h *ReservationsHandler) ListByFacility(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	reservations, err := h.service.List(c.UserContext(), principal, service.ReservationListFilter{FacilityID: &id})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// ListByStatus GET /api/reservations/status/:status.
func (h *ReservationsHandler) ListByStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	status, err := domain.ParseReservationStatus(c.Params("status"))
	if err != nil {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": c.Params("status")})
	}

	reservations, err := h.service.List(c.UserContext(), principal, service.ReservationListFilter{Status: &status})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponses(reservations)})
}

// GetByID GET /api/reservations/:id.
func (h *ReservationsHandler) GetByID(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.service.GetByID(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponse(reservation)})
}

// UpdateStatus PATCH /api/reservations/:id/status.
func (h *ReservationsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReservationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	reservation, err := h.service.TransitionStatus(c.UserContext(), principal, id, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReservationResponse(reservation)})
}

// Delete DELETE /api/reservations/:id.
func (h *ReservationsHandler) Delete(c *fiber.Ctx) error {
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
