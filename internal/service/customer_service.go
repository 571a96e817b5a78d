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

type CustomerRequest struct {
	ID      string `json:"id"`
	Code    string `json:"code" validate:"notblank,max=50"`
	Name    string `json:"name" validate:"notblank,max=255"`
	Phone   string `json:"phone" validate:"max=30"`
	Address string `json:"address"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CustomerService interface {
	CreateCustomer(req *CustomerRequest, actor Actor) (*model.Customer, error)
	UpdateCustomer(id string, req *CustomerRequest, actor Actor) (*model.Customer, error)
	DeleteCustomer(id string) error
	GetAllCustomers() ([]model.Customer, error)
	GetCustomerByID(id string) (*model.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) CreateCustomer(req *CustomerRequest, actor Actor) (*model.Customer, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	code := repository.NormalizeCode(req.Code)
	taken, err := s.repo.CodeTaken(code, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("customer %w", ErrDuplicateCode)
	}

	customer := &model.Customer{
		Code:    code,
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Status:  status(req.Status),
	}
	customer.ID = strings.TrimSpace(req.ID)
	customer.CreatedBy = actor.ID
	customer.UpdatedBy = actor.ID

	if err := s.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer keeps the original created_at.
func (s *customerService) UpdateCustomer(id string, req *CustomerRequest, actor Actor) (*model.Customer, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	customer, err := s.GetCustomerByID(id)
	if err != nil {
		return nil, err
	}

	code := repository.NormalizeCode(req.Code)
	taken, err := s.repo.CodeTaken(code, customer.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("customer %w", ErrDuplicateCode)
	}

	customer.Code = code
	customer.Name = strings.TrimSpace(req.Name)
	customer.Phone = strings.TrimSpace(req.Phone)
	customer.Address = strings.TrimSpace(req.Address)
	customer.Status = status(req.Status)
	customer.UpdatedBy = actor.ID

	if err := s.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer leaves past sales alone; they keep their customer name.
func (s *customerService) DeleteCustomer(id string) error {
	customer, err := s.GetCustomerByID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(customer.ID)
}

func (s *customerService) GetAllCustomers() ([]model.Customer, error) {
	return s.repo.FindAll()
}

func (s *customerService) GetCustomerByID(id string) (*model.Customer, error) {
	customer, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %w", ErrNotFound)
		}
		return nil, err
	}
	return customer, nil
}

func status(s string) model.Status {
	if s == "" {
		return model.StatusActive
	}
	return model.Status(s)
}
