package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haianhng/cafepos-backend/api/controllers"
	"github.com/haianhng/cafepos-backend/api/middleware"
	authsvc "github.com/haianhng/cafepos-backend/internal/auth"
	"github.com/haianhng/cafepos-backend/internal/customers"
	"github.com/haianhng/cafepos-backend/internal/inventory"
	invoicesvc "github.com/haianhng/cafepos-backend/internal/invoices"
	layoutsvc "github.com/haianhng/cafepos-backend/internal/layout"
	menusvc "github.com/haianhng/cafepos-backend/internal/menu"
	ordersvc "github.com/haianhng/cafepos-backend/internal/orders"
	reportsvc "github.com/haianhng/cafepos-backend/internal/reports"
	"github.com/haianhng/cafepos-backend/internal/reservations"
	staffsvc "github.com/haianhng/cafepos-backend/internal/staff"
	usersvc "github.com/haianhng/cafepos-backend/internal/users"
	"github.com/haianhng/cafepos-backend/pkg/auth/session"
	"github.com/haianhng/cafepos-backend/pkg/config"
	"github.com/haianhng/cafepos-backend/pkg/db"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/logger"
	"github.com/haianhng/cafepos-backend/pkg/metrics"
	"github.com/haianhng/cafepos-backend/pkg/redis"
)

// Services bundles the domain services the router wires into controllers.
type Services struct {
	Auth         authsvc.Service
	Users        usersvc.Service
	Menu         menusvc.Service
	Layout       layoutsvc.Service
	Orders       ordersvc.Service
	Invoices     invoicesvc.Service
	Reports      reportsvc.Service
	Staff        staffsvc.Service
	Inventory    inventory.Service
	Customers    customers.Service
	Reservations reservations.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleAdmin)).
				Post("/register", controllers.UserCreate(svcs.Users, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		managers := middleware.RequireRole(logg, enums.UserRoleAdmin, enums.UserRoleManager)
		counter := middleware.RequireRole(logg,
			enums.UserRoleAdmin, enums.UserRoleManager, enums.UserRoleCashier)

		r.Route("/users", func(r chi.Router) {
			r.Post("/me/password", controllers.UserChangePassword(svcs.Users, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
				r.Post("/", controllers.UserCreate(svcs.Users, logg))
				r.Get("/", controllers.UserList(svcs.Users, logg))
				r.Get("/{userId}", controllers.UserGet(svcs.Users, logg))
				r.Patch("/{userId}", controllers.UserUpdate(svcs.Users, logg))
				r.Patch("/{userId}/role", controllers.UserUpdateRole(svcs.Users, logg))
				r.Post("/{userId}/reset-password", controllers.UserResetPassword(svcs.Users, logg))
			})
		})

		r.Route("/layout", func(r chi.Router) {
			r.Route("/floors", func(r chi.Router) {
				r.Get("/", controllers.FloorList(svcs.Layout, logg))
				r.Get("/{floorId}", controllers.FloorGet(svcs.Layout, logg))
				r.Get("/{floorId}/tables", controllers.FloorTables(svcs.Layout, logg))

				r.Group(func(r chi.Router) {
					r.Use(managers)
					r.Post("/", controllers.FloorCreate(svcs.Layout, logg))
					r.Patch("/{floorId}", controllers.FloorUpdate(svcs.Layout, logg))
					r.Delete("/{floorId}", controllers.FloorDelete(svcs.Layout, logg))
					r.Put("/{floorId}/objects", controllers.LayoutObjectBatchUpdate(svcs.Layout, logg))
				})
			})
			r.Route("/objects", func(r chi.Router) {
				r.Use(managers)
				r.Post("/", controllers.LayoutObjectCreate(svcs.Layout, logg))
				r.Patch("/{objectId}", controllers.LayoutObjectUpdate(svcs.Layout, logg))
				r.Delete("/{objectId}", controllers.LayoutObjectDelete(svcs.Layout, logg))
			})
		})

		r.Route("/menu", func(r chi.Router) {
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.CategoryList(svcs.Menu, logg))

				r.Group(func(r chi.Router) {
					r.Use(managers)
					r.Post("/", controllers.CategoryCreate(svcs.Menu, logg))
					r.Patch("/{categoryId}", controllers.CategoryUpdate(svcs.Menu, logg))
					r.Delete("/{categoryId}", controllers.CategoryDelete(svcs.Menu, logg))
				})
			})
			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.MenuItemList(svcs.Menu, logg))
				r.Get("/{itemId}", controllers.MenuItemGet(svcs.Menu, logg))

				r.Group(func(r chi.Router) {
					r.Use(managers)
					r.Post("/", controllers.MenuItemCreate(svcs.Menu, logg))
					r.Patch("/{itemId}", controllers.MenuItemUpdate(svcs.Menu, logg))
					r.Delete("/{itemId}", controllers.MenuItemDelete(svcs.Menu, logg))
					r.Post("/{itemId}/options", controllers.MenuOptionCreate(svcs.Menu, logg))
				})
			})
			r.Route("/options", func(r chi.Router) {
				r.Use(managers)
				r.Patch("/{optionId}", controllers.MenuOptionUpdate(svcs.Menu, logg))
				r.Delete("/{optionId}", controllers.MenuOptionDelete(svcs.Menu, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(svcs.Orders, logg))
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/active", controllers.OrderListActive(svcs.Orders, logg))
			r.Get("/table/{tableId}", controllers.OrderListByTable(svcs.Orders, logg))
			r.Post("/merge-tables", controllers.OrderMergeTables(svcs.Orders, logg))
			r.Post("/move-table", controllers.OrderMoveTable(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderGet(svcs.Orders, logg))
			r.Patch("/{orderId}", controllers.OrderUpdate(svcs.Orders, logg))
			r.Post("/{orderId}/items", controllers.OrderAddItems(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(svcs.Orders, logg))
			r.Post("/{orderId}/pay-items", controllers.OrderPayItems(svcs.Orders, logg))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.InvoiceList(svcs.Invoices, logg))
			r.Post("/generate/{orderId}", controllers.InvoiceGenerate(svcs.Invoices, logg))
			r.Get("/order/{orderId}", controllers.InvoiceGetByOrder(svcs.Invoices, logg))
			r.Get("/{invoiceId}", controllers.InvoiceGet(svcs.Invoices, logg))
			r.Get("/{invoiceId}/pdf", controllers.InvoicePDF(svcs.Invoices, logg))
			r.Post("/{invoiceId}/payments", controllers.InvoiceAddPayment(svcs.Invoices, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(counter)
			r.Get("/sales", controllers.ReportSales(svcs.Reports, logg))
			r.Get("/top-items", controllers.ReportTopItems(svcs.Reports, logg))
			r.Get("/category-revenue", controllers.ReportCategoryRevenue(svcs.Reports, logg))
			r.Get("/table-usage", controllers.ReportTableUsage(svcs.Reports, logg))
			r.Get("/daily-summary", controllers.ReportDailySummary(svcs.Reports, logg))
		})

		r.Route("/staff", func(r chi.Router) {
			r.Post("/check-in", controllers.AttendanceCheckIn(svcs.Staff, logg))
			r.Post("/check-out", controllers.AttendanceCheckOut(svcs.Staff, logg))
			r.Get("/shifts", controllers.ShiftList(svcs.Staff, logg))
			r.Get("/profiles/{userId}", controllers.StaffProfileGet(svcs.Staff, logg))

			r.Group(func(r chi.Router) {
				r.Use(managers)
				r.Put("/profiles/{userId}", controllers.StaffProfileUpsert(svcs.Staff, logg))
				r.Post("/shifts", controllers.ShiftCreate(svcs.Staff, logg))
				r.Patch("/shifts/{shiftId}", controllers.ShiftUpdate(svcs.Staff, logg))
				r.Delete("/shifts/{shiftId}", controllers.ShiftDelete(svcs.Staff, logg))
				r.Get("/attendances", controllers.AttendanceList(svcs.Staff, logg))
			})
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Use(managers)
			r.Post("/items", controllers.InventoryItemCreate(svcs.Inventory, logg))
			r.Get("/items", controllers.InventoryItemList(svcs.Inventory, logg))
			r.Get("/items/low-stock", controllers.InventoryLowStock(svcs.Inventory, logg))
			r.Get("/items/{itemId}", controllers.InventoryItemGet(svcs.Inventory, logg))
			r.Patch("/items/{itemId}", controllers.InventoryItemUpdate(svcs.Inventory, logg))
			r.Delete("/items/{itemId}", controllers.InventoryItemDelete(svcs.Inventory, logg))
			r.Post("/items/{itemId}/transactions", controllers.InventoryTransactionCreate(svcs.Inventory, logg))
			r.Get("/items/{itemId}/transactions", controllers.InventoryTransactionList(svcs.Inventory, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CustomerCreate(svcs.Customers, logg))
			r.Get("/", controllers.CustomerList(svcs.Customers, logg))
			r.Get("/{customerId}", controllers.CustomerGet(svcs.Customers, logg))
			r.Patch("/{customerId}", controllers.CustomerUpdate(svcs.Customers, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(svcs.Customers, logg))
			r.Post("/{customerId}/points", controllers.CustomerAddPoints(svcs.Customers, logg))
			r.Post("/{customerId}/points/redeem", controllers.CustomerRedeemPoints(svcs.Customers, logg))
			r.Get("/{customerId}/points", controllers.CustomerPointsList(svcs.Customers, logg))
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", controllers.ReservationCreate(svcs.Reservations, logg))
			r.Get("/", controllers.ReservationList(svcs.Reservations, logg))
			r.Get("/availability", controllers.ReservationAvailability(svcs.Reservations, logg))
			r.Get("/{reservationId}", controllers.ReservationGet(svcs.Reservations, logg))
			r.Patch("/{reservationId}", controllers.ReservationUpdate(svcs.Reservations, logg))
			r.Patch("/{reservationId}/status", controllers.ReservationUpdateStatus(svcs.Reservations, logg))
		})
	})

	return r
}
