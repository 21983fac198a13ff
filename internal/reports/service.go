package reports

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
)

const (
	dateLayout      = "2006-01-02"
	defaultTopLimit = 10
	maxTopLimit     = 50
)

// Service exposes the read-only reporting queries.
type Service interface {
	Sales(ctx context.Context, input RangeInput) (*SalesSummary, error)
	TopItems(ctx context.Context, input TopItemsInput) ([]TopItem, error)
	CategoryRevenue(ctx context.Context, input RangeInput) ([]CategoryRevenue, error)
	TableUsage(ctx context.Context, input RangeInput) ([]TableUsage, error)
	DailySummary(ctx context.Context, date string) (*DailySummary, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the reporting service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Sales(ctx context.Context, input RangeInput) (*SalesSummary, error) {
	if err := validateRange(input); err != nil {
		return nil, err
	}
	days, err := s.repo.SalesByDay(ctx, input.DateFrom, input.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sales by day")
	}

	summary := &SalesSummary{Days: days}
	for _, day := range days {
		summary.TotalRevenue += day.Revenue
		summary.TotalOrders += day.Orders
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrder = summary.TotalRevenue / summary.TotalOrders
	}
	return summary, nil
}

func (s *service) TopItems(ctx context.Context, input TopItemsInput) ([]TopItem, error) {
	if err := validateRange(input.RangeInput); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	items, err := s.repo.TopItems(ctx, input.DateFrom, input.DateTo, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "top items")
	}
	return items, nil
}

func (s *service) CategoryRevenue(ctx context.Context, input RangeInput) ([]CategoryRevenue, error) {
	if err := validateRange(input); err != nil {
		return nil, err
	}
	rows, err := s.repo.CategoryRevenue(ctx, input.DateFrom, input.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "category revenue")
	}
	return rows, nil
}

func (s *service) TableUsage(ctx context.Context, input RangeInput) ([]TableUsage, error) {
	if err := validateRange(input); err != nil {
		return nil, err
	}
	rows, err := s.repo.TableUsage(ctx, input.DateFrom, input.DateTo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "table usage")
	}
	return rows, nil
}

// DailySummary defaults to today when no date is supplied.
func (s *service) DailySummary(ctx context.Context, date string) (*DailySummary, error) {
	if date == "" {
		date = s.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be formatted as YYYY-MM-DD")
	}

	counts, err := s.repo.OrderCountsByStatus(ctx, date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order counts")
	}
	revenue, err := s.repo.RevenueForDay(ctx, date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "daily revenue")
	}
	collected, err := s.repo.CollectedForDay(ctx, date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "daily collected")
	}

	return &DailySummary{
		Date:           date,
		OrdersByStatus: counts,
		Revenue:        revenue,
		Collected:      collected,
	}, nil
}

func validateRange(input RangeInput) error {
	if input.DateFrom != "" {
		if _, err := time.Parse(dateLayout, input.DateFrom); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "date_from must be formatted as YYYY-MM-DD")
		}
	}
	if input.DateTo != "" {
		if _, err := time.Parse(dateLayout, input.DateTo); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "date_to must be formatted as YYYY-MM-DD")
		}
	}
	if input.DateFrom != "" && input.DateTo != "" && input.DateFrom > input.DateTo {
		return pkgerrors.New(pkgerrors.CodeValidation, "date_from must not be after date_to")
	}
	return nil
}
