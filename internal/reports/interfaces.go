package reports

import "context"

// Repository runs the read-only aggregation queries behind the reports.
type Repository interface {
	SalesByDay(ctx context.Context, dateFrom, dateTo string) ([]DailySales, error)
	TopItems(ctx context.Context, dateFrom, dateTo string, limit int) ([]TopItem, error)
	CategoryRevenue(ctx context.Context, dateFrom, dateTo string) ([]CategoryRevenue, error)
	TableUsage(ctx context.Context, dateFrom, dateTo string) ([]TableUsage, error)
	OrderCountsByStatus(ctx context.Context, date string) ([]StatusCount, error)
	RevenueForDay(ctx context.Context, date string) (int64, error)
	CollectedForDay(ctx context.Context, date string) (int64, error)
}
