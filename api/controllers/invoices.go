package controllers

import (
	"fmt"
	"net/http"

	"github.com/haianhng/cafepos-backend/api/middleware"
	"github.com/haianhng/cafepos-backend/api/responses"
	"github.com/haianhng/cafepos-backend/api/validators"
	invoicesvc "github.com/haianhng/cafepos-backend/internal/invoices"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/logger"
)

type addPaymentRequest struct {
	Amount          int64   `json:"amount" validate:"required,gt=0"`
	Method          string  `json:"method" validate:"omitempty,oneof=cash card transfer"`
	ReferenceNumber *string `json:"reference_number,omitempty"`
}

func InvoiceGenerate(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Generate(r.Context(), invoicesvc.GenerateInput{
			OrderID: orderID,
			UserID:  middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}

func InvoiceGet(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

func InvoiceGetByOrder(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.GetByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

func InvoiceList(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := invoicesvc.ListFilters{}
		if raw := validators.ParseQueryString(r, "payment_status"); raw != nil {
			status := enums.PaymentStatus(*raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status filter"))
				return
			}
			filters.PaymentStatus = &status
		}
		if from, err := parseDateQuery(r, "date_from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			filters.DateFrom = from
		}
		if to, err := parseDateQuery(r, "date_to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			filters.DateTo = to
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func InvoiceAddPayment(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.AddPayment(r.Context(), invoicesvc.AddPaymentInput{
			InvoiceID:       id,
			UserID:          middleware.UserIDFromContext(r.Context()),
			Amount:          payload.Amount,
			Method:          enums.PaymentMethod(payload.Method),
			ReferenceNumber: payload.ReferenceNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

// InvoicePDF streams the rendered receipt as a download.
func InvoicePDF(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pdf, err := svc.RenderPDF(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdf); err != nil && logg != nil {
			logg.Error(r.Context(), "invoice.pdf.write", err)
		}
	}
}
