package controllers

import (
	"net/http"

	"github.com/haianhng/cafepos-backend/api/responses"
	"github.com/haianhng/cafepos-backend/api/validators"
	reportsvc "github.com/haianhng/cafepos-backend/internal/reports"
	"github.com/haianhng/cafepos-backend/pkg/logger"
)

func reportRange(r *http.Request) reportsvc.RangeInput {
	input := reportsvc.RangeInput{}
	if from := validators.ParseQueryString(r, "date_from"); from != nil {
		input.DateFrom = *from
	}
	if to := validators.ParseQueryString(r, "date_to"); to != nil {
		input.DateTo = *to
	}
	return input
}

func ReportSales(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Sales(r.Context(), reportRange(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func ReportTopItems(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.TopItems(r.Context(), reportsvc.TopItemsInput{
			RangeInput: reportRange(r),
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ReportCategoryRevenue(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.CategoryRevenue(r.Context(), reportRange(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func ReportTableUsage(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.TableUsage(r.Context(), reportRange(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func ReportDailySummary(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := ""
		if raw := validators.ParseQueryString(r, "date"); raw != nil {
			date = *raw
		}

		summary, err := svc.DailySummary(r.Context(), date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
