package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/reservation-service/internal/auth"
	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/repository"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

// FacilityService manages the facility catalog.
type FacilityService struct {
	facilities repository.FacilityRepository
}

// FacilityInput carries facility fields for create/update.
type FacilityInput struct {
	Name        string
	Description string
	Capacity    int
	Location    string
	ImageURL    *string
}

// NewFacilityService constructs the service.
func NewFacilityService(facilities repository.FacilityRepository) *FacilityService {
	return &FacilityService{facilities: facilities}
}

// List returns every facility.
func (s *FacilityService) List(ctx context.Context) ([]domain.Facility, error) {
	result, err := s.facilities.List(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.Facility{}
	}
	return result, nil
}

// GetByID fetches one facility.
func (s *FacilityService) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	facility, err := s.facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("facility", map[string]any{"facility_id": id})
		}
		return nil, err
	}
	return facility, nil
}

// Search filters facilities by case-insensitive name substring and minimum
// capacity. Absent filters are no-ops; an empty result is not an error.
func (s *FacilityService) Search(ctx context.Context, name *string, minCapacity *int) ([]domain.Facility, error) {
	result, err := s.facilities.Search(ctx, repository.FacilitySearch{Name: name, MinCapacity: minCapacity})
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []domain.Facility{}
	}
	return result, nil
}

// Create adds a facility. Administrators only.
func (s *FacilityService) Create(ctx context.Context, actor *domain.User, input FacilityInput) (*domain.Facility, error) {
	if !auth.Can(actor, auth.ActionFacilityManage, 0) {
		return nil, apperrors.NewForbidden("administrator role required")
	}

	facility := &domain.Facility{
		Name:        input.Name,
		Description: input.Description,
		Capacity:    input.Capacity,
		Location:    input.Location,
		ImageURL:    input.ImageURL,
	}
	if problems := facility.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("invalid facility", problems)
	}

	if err := s.facilities.Create(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

// Update replaces the mutable fields of a facility. Administrators only.
func (s *FacilityService) Update(ctx context.Context, actor *domain.User, id int64, input FacilityInput) (*domain.Facility, error) {
	if !auth.Can(actor, auth.ActionFacilityManage, 0) {
		return nil, apperrors.NewForbidden("administrator role required")
	}

	facility, err := s.facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("facility", map[string]any{"facility_id": id})
		}
		return nil, err
	}

	facility.Name = input.Name
	facility.Description = input.Description
	facility.Capacity = input.Capacity
	facility.Location = input.Location
	facility.ImageURL = input.ImageURL
	if problems := facility.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("invalid facility", problems)
	}

	if err := s.facilities.Update(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

// Delete removes a facility. Administrators only.
func (s *FacilityService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !auth.Can(actor, auth.ActionFacilityManage, 0) {
		return apperrors.NewForbidden("administrator role required")
	}
	if err := s.facilities.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("facility", map[string]any{"facility_id": id})
		}
		return err
	}
	return nil
}
