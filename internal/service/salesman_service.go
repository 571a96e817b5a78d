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

type SalesmanRequest struct {
	ID     string `json:"id"`
	Code   string `json:"code" validate:"notblank,max=50"`
	Name   string `json:"name" validate:"notblank,max=255"`
	Phone  string `json:"phone" validate:"max=30"`
	Area   string `json:"area" validate:"max=100"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type SalesmanService interface {
	CreateSalesman(req *SalesmanRequest, actor Actor) (*model.Salesman, error)
	UpdateSalesman(id string, req *SalesmanRequest, actor Actor) (*model.Salesman, error)
	DeleteSalesman(id string) error
	GetAllSalesmen() ([]model.Salesman, error)
	GetSalesmanByID(id string) (*model.Salesman, error)
}

type salesmanService struct {
	repo repository.SalesmanRepository
}

func NewSalesmanService(repo repository.SalesmanRepository) SalesmanService {
	return &salesmanService{repo: repo}
}

func (s *salesmanService) CreateSalesman(req *SalesmanRequest, actor Actor) (*model.Salesman, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	code := repository.NormalizeCode(req.Code)
	taken, err := s.repo.CodeTaken(code, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("salesman %w", ErrDuplicateCode)
	}

	salesman := &model.Salesman{
		Code:   code,
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Area:   strings.TrimSpace(req.Area),
		Status: status(req.Status),
	}
	salesman.ID = strings.TrimSpace(req.ID)
	salesman.CreatedBy = actor.ID
	salesman.UpdatedBy = actor.ID

	if err := s.repo.Create(salesman); err != nil {
		return nil, err
	}
	return salesman, nil
}

func (s *salesmanService) UpdateSalesman(id string, req *SalesmanRequest, actor Actor) (*model.Salesman, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	salesman, err := s.GetSalesmanByID(id)
	if err != nil {
		return nil, err
	}

	code := repository.NormalizeCode(req.Code)
	taken, err := s.repo.CodeTaken(code, salesman.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("salesman %w", ErrDuplicateCode)
	}

	salesman.Code = code
	salesman.Name = strings.TrimSpace(req.Name)
	salesman.Phone = strings.TrimSpace(req.Phone)
	salesman.Area = strings.TrimSpace(req.Area)
	salesman.Status = status(req.Status)
	salesman.UpdatedBy = actor.ID

	if err := s.repo.Update(salesman); err != nil {
		return nil, err
	}
	return salesman, nil
}

func (s *salesmanService) DeleteSalesman(id string) error {
	salesman, err := s.GetSalesmanByID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(salesman.ID)
}

func (s *salesmanService) GetAllSalesmen() ([]model.Salesman, error) {
	return s.repo.FindAll()
}

func (s *salesmanService) GetSalesmanByID(id string) (*model.Salesman, error) {
	salesman, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("salesman %w", ErrNotFound)
		}
		return nil, err
	}
	return salesman, nil
}
