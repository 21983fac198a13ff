package reports

import "github.com/google/uuid"

// RangeInput bounds a report to [DateFrom, DateTo] inclusive, both formatted
// as 2006-01-02. An empty bound leaves that side open.
type RangeInput struct {
	DateFrom string
	DateTo   string
}

// TopItemsInput bounds the ranking and caps the number of rows returned.
type TopItemsInput struct {
	RangeInput
	Limit int
}

// DailySales is revenue and order count for one calendar day.
type DailySales struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Orders  int64  `json:"orders"`
}

// SalesSummary aggregates settled orders over a range.
type SalesSummary struct {
	Days         []DailySales `json:"days"`
	TotalRevenue int64        `json:"total_revenue"`
	TotalOrders  int64        `json:"total_orders"`
	AverageOrder int64        `json:"average_order"`
}

// TopItem ranks one menu item by quantity sold.
type TopItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
	Revenue    int64     `json:"revenue"`
}

// CategoryRevenue is the revenue contributed by one menu category.
type CategoryRevenue struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Quantity   int64     `json:"quantity"`
	Revenue    int64     `json:"revenue"`
}

// TableUsage counts settled orders per table.
type TableUsage struct {
	TableID uuid.UUID `json:"table_id"`
	Name    string    `json:"name"`
	Orders  int64     `json:"orders"`
	Revenue int64     `json:"revenue"`
}

// StatusCount is one order-status bucket in the daily summary.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DailySummary is the dashboard snapshot for a single day.
type DailySummary struct {
	Date           string        `json:"date"`
	OrdersByStatus []StatusCount `json:"orders_by_status"`
	Revenue        int64         `json:"revenue"`
	Collected      int64         `json:"collected"`
}
