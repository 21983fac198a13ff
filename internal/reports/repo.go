package reports

import (
	"context"

	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// settledStatuses are the orders that count towards revenue.
var settledStatuses = []enums.OrderStatus{
	enums.OrderStatusCompleted,
	enums.OrderStatusPaid,
}

type repository struct {
	db *gorm.DB
}

// NewRepository wraps the shared GORM handle for report queries.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// rangeScope bounds a query on the given timestamp column. date() works the
// same on postgres and sqlite, which keeps the repo tests honest.
func rangeScope(column, dateFrom, dateTo string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if dateFrom != "" {
			q = q.Where("date("+column+") >= ?", dateFrom)
		}
		if dateTo != "" {
			q = q.Where("date("+column+") <= ?", dateTo)
		}
		return q
	}
}

func (r *repository) SalesByDay(ctx context.Context, dateFrom, dateTo string) ([]DailySales, error) {
	var rows []DailySales
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("date(created_at) AS date, COALESCE(SUM(total_all), 0) AS revenue, COUNT(*) AS orders").
		Where("status IN ?", settledStatuses).
		Scopes(rangeScope("created_at", dateFrom, dateTo)).
		Group("date(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TopItems(ctx context.Context, dateFrom, dateTo string, limit int) ([]TopItem, error) {
	var rows []TopItem
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.menu_item_id AS menu_item_id, menu_items.name AS name, COALESCE(SUM(order_items.quantity), 0) AS quantity, COALESCE(SUM(order_items.subtotal), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.status IN ?", settledStatuses).
		Scopes(rangeScope("orders.created_at", dateFrom, dateTo)).
		Group("order_items.menu_item_id, menu_items.name").
		Order("quantity DESC, name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CategoryRevenue(ctx context.Context, dateFrom, dateTo string) ([]CategoryRevenue, error) {
	var rows []CategoryRevenue
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("categories.id AS category_id, categories.name AS name, COALESCE(SUM(order_items.quantity), 0) AS quantity, COALESCE(SUM(order_items.subtotal), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN categories ON categories.id = menu_items.category_id").
		Where("orders.status IN ?", settledStatuses).
		Scopes(rangeScope("orders.created_at", dateFrom, dateTo)).
		Group("categories.id, categories.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TableUsage(ctx context.Context, dateFrom, dateTo string) ([]TableUsage, error) {
	var rows []TableUsage
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("layout_objects.id AS table_id, layout_objects.name AS name, COUNT(*) AS orders, COALESCE(SUM(orders.total_all), 0) AS revenue").
		Joins("JOIN layout_objects ON layout_objects.id = orders.table_id").
		Where("orders.table_id IS NOT NULL AND orders.status IN ?", settledStatuses).
		Scopes(rangeScope("orders.created_at", dateFrom, dateTo)).
		Group("layout_objects.id, layout_objects.name").
		Order("orders DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) OrderCountsByStatus(ctx context.Context, date string) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("date(created_at) = ?", date).
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) RevenueForDay(ctx context.Context, date string) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_all), 0)").
		Where("status IN ? AND date(created_at) = ?", settledStatuses, date).
		Scan(&revenue).Error
	return revenue, err
}

func (r *repository) CollectedForDay(ctx context.Context, date string) (int64, error) {
	var collected int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date(paid_at) = ?", date).
		Scan(&collected).Error
	return collected, err
}
