package service

import (
	"errors"
	"fmt"
	"strings"

	"go-sales-inventory/internal/model"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/pkg/validator"

	"gorm.io/gorm"
)

type LocationRequest struct {
	ID      string `json:"id"`
	Code    string `json:"code" validate:"notblank,max=50"`
	Name    string `json:"name" validate:"notblank,max=255"`
	Address string `json:"address"`
	Type    string `json:"type" validate:"omitempty,oneof=warehouse store"`
}

type LocationService interface {
	CreateLocation(req *LocationRequest, actor Actor) (*model.Location, error)
	UpdateLocation(id string, req *LocationRequest, actor Actor) (*model.Location, error)
	DeleteLocation(id string) error
	GetAllLocations() ([]model.Location, error)
	GetLocationByID(id string) (*model.Location, error)
}

type locationService struct {
	repo repository.LocationRepository
}

func NewLocationService(repo repository.LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) CreateLocation(req *LocationRequest, actor Actor) (*model.Location, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	code := repository.NormalizeCode(req.Code)
	taken, err := s.repo.CodeTaken(code, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("location %w", ErrDuplicateCode)
	}

	location := &model.Location{
		Code:    code,
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Type:    locationType(req.Type),
	}
	location.ID = strings.TrimSpace(req.ID)
	location.CreatedBy = actor.ID
	location.UpdatedBy = actor.ID

	if err := s.repo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *locationService) UpdateLocation(id string, req *LocationRequest, actor Actor) (*model.Location, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	location, err := s.GetLocationByID(id)
	if err != nil {
		return nil, err
	}

	code := repository.NormalizeCode(req.Code)
	taken, err := s.repo.CodeTaken(code, location.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("location %w", ErrDuplicateCode)
	}

	location.Code = code
	location.Name = strings.TrimSpace(req.Name)
	location.Address = strings.TrimSpace(req.Address)
	location.Type = locationType(req.Type)
	location.UpdatedBy = actor.ID

	if err := s.repo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteLocation also clears the location from every product stored there.
func (s *locationService) DeleteLocation(id string) error {
	location, err := s.GetLocationByID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(location.ID)
}

func (s *locationService) GetAllLocations() ([]model.Location, error) {
	return s.repo.FindAll()
}

func (s *locationService) GetLocationByID(id string) (*model.Location, error) {
	location, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("location %w", ErrNotFound)
		}
		return nil, err
	}
	return location, nil
}

func locationType(t string) model.LocationType {
	if t == "" {
		return model.LocationWarehouse
	}
	return model.LocationType(t)
}
