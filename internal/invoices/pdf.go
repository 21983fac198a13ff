package invoices

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/haianhng/cafepos-backend/pkg/config"
	"github.com/haianhng/cafepos-backend/pkg/db/models"
)

// PDFRenderer turns an invoice into a printable receipt.
type PDFRenderer struct {
	cfg config.ReceiptConfig
}

// NewPDFRenderer builds a renderer with the configured page geometry.
func NewPDFRenderer(cfg config.ReceiptConfig) *PDFRenderer {
	if cfg.PageSize == "" {
		cfg.PageSize = "A4"
	}
	if cfg.MarginMM <= 0 {
		cfg.MarginMM = 15
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Helvetica"
	}
	if cfg.ShopName == "" {
		cfg.ShopName = "CafePOS"
	}
	return &PDFRenderer{cfg: cfg}
}

// Render produces the receipt PDF bytes. The invoice must carry its order
// with items preloaded.
func (r *PDFRenderer) Render(invoice *models.Invoice) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("invoice is required")
	}

	pdf := gofpdf.New("P", "mm", r.cfg.PageSize, "")
	pdf.SetMargins(r.cfg.MarginMM, r.cfg.MarginMM, r.cfg.MarginMM)
	pdf.AddPage()

	pdf.SetFont(r.cfg.FontFamily, "B", 16)
	pdf.CellFormat(0, 10, r.cfg.ShopName, "", 1, "C", false, 0, "")
	if r.cfg.ShopLine != "" {
		pdf.SetFont(r.cfg.FontFamily, "", 9)
		pdf.CellFormat(0, 5, r.cfg.ShopLine, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(r.cfg.FontFamily, "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date %s", invoice.CreatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	if invoice.Order != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Order %s", invoice.Order.OrderNumber), "", 1, "L", false, 0, "")
		if invoice.Order.Table != nil {
			pdf.CellFormat(0, 6, fmt.Sprintf("Table %s", invoice.Order.Table.Name), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont(r.cfg.FontFamily, "B", 10)
	pdf.CellFormat(90, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont(r.cfg.FontFamily, "", 10)
	if invoice.Order != nil {
		for _, item := range invoice.Order.Items {
			name := item.MenuItemID.String()
			if item.MenuItem != nil {
				name = item.MenuItem.Name
			}
			pdf.CellFormat(90, 6, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, formatAmount(item.UnitPrice), "", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, formatAmount(item.Subtotal), "", 1, "R", false, 0, "")
			for _, opt := range item.Options {
				pdf.CellFormat(90, 5, fmt.Sprintf("  + %s", opt.Name), "", 0, "L", false, 0, "")
				pdf.CellFormat(20, 5, "", "", 0, "R", false, 0, "")
				pdf.CellFormat(35, 5, formatAmount(opt.ExtraPrice), "", 0, "R", false, 0, "")
				pdf.CellFormat(35, 5, "", "", 1, "R", false, 0, "")
			}
		}
	}
	pdf.Ln(3)

	writeTotal := func(label string, amount int64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont(r.cfg.FontFamily, style, 10)
		pdf.CellFormat(145, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, formatAmount(amount), "", 1, "R", false, 0, "")
	}

	writeTotal("Subtotal", invoice.Subtotal, false)
	if invoice.DiscountAmount > 0 {
		writeTotal("Discount", -invoice.DiscountAmount, false)
	}
	if invoice.TaxAmount > 0 {
		writeTotal("Tax", invoice.TaxAmount, false)
	}
	writeTotal("Total", invoice.Total, true)

	if paid := invoice.TotalPaid(); paid > 0 {
		writeTotal("Paid", paid, false)
		writeTotal("Due", invoice.Total-paid, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
