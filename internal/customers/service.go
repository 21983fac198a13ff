package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines loyalty member operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*CustomerList, error)
	Update(ctx context.Context, input UpdateInput) (*models.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddPoints(ctx context.Context, input PointsInput) (*models.Customer, error)
	RedeemPoints(ctx context.Context, input PointsInput) (*models.Customer, error)
	ListPoints(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*PointList, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a customer service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Customer, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Phone != nil && *input.Phone != "" {
		if _, err := s.repo.FindByPhone(ctx, *input.Phone); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check phone")
		}
	}

	customer := &models.Customer{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
		Tier:  enums.CustomerTierRegular,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*CustomerList, error) {
	customers, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return &CustomerList{
		Customers: customers,
		Meta:      pagination.NewMeta(params, total),
	}, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Customer, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
		}
		updates["name"] = *input.Name
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}

	var result *models.Customer
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}
		if input.Phone != nil && *input.Phone != "" {
			existing, err := repo.FindByPhone(ctx, *input.Phone)
			if err == nil && existing.ID != customer.ID {
				return pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check phone")
			}
		}
		if len(updates) > 0 {
			if err := repo.Update(ctx, customer.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
			}
			customer, err = repo.FindByID(ctx, customer.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload customer")
			}
		}
		result = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

// AddPoints appends an earn entry and recomputes the tier.
func (s *service) AddPoints(ctx context.Context, input PointsInput) (*models.Customer, error) {
	return s.applyPoints(ctx, input, enums.CustomerPointEarn)
}

// RedeemPoints appends a redeem entry. The balance can never go negative.
func (s *service) RedeemPoints(ctx context.Context, input PointsInput) (*models.Customer, error) {
	return s.applyPoints(ctx, input, enums.CustomerPointRedeem)
}

func (s *service) applyPoints(ctx context.Context, input PointsInput, kind enums.CustomerPointType) (*models.Customer, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.Points <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "points must be positive")
	}

	var result *models.Customer
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.FindByID(ctx, input.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}

		delta := input.Points
		if kind == enums.CustomerPointRedeem {
			if customer.Points < input.Points {
				return pkgerrors.New(pkgerrors.CodeDomainRule, fmt.Sprintf("insufficient points: have %d, need %d", customer.Points, input.Points))
			}
			delta = -input.Points
		}

		point := &models.CustomerPoint{
			CustomerID:  customer.ID,
			OrderID:     input.OrderID,
			Points:      delta,
			Type:        kind,
			Description: input.Description,
		}
		if _, err := repo.CreatePoint(ctx, point); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record points")
		}

		balance := customer.Points + delta
		tier := enums.TierForPoints(balance)
		if err := repo.Update(ctx, customer.ID, map[string]any{
			"points": balance,
			"tier":   tier,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update balance")
		}
		customer.Points = balance
		customer.Tier = tier
		result = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ListPoints(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*PointList, error) {
	if _, err := s.Get(ctx, customerID); err != nil {
		return nil, err
	}
	points, total, err := s.repo.ListPoints(ctx, customerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list points")
	}
	return &PointList{
		Points: points,
		Meta:   pagination.NewMeta(params, total),
	}, nil
}
