package comprobante

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	appcomprobante "github.com/mercado/backend/internal/application/comprobante"
	"github.com/mercado/backend/internal/application/currency"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Prices include 19% Colombian IVA, so the factura breaks the paid total
// back into base and tax: base = total / 1.19.
var ivaFactor = decimal.RequireFromString("1.19")

// itemView is a comprobante line with amounts formatted for display
type itemView struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// documentView is the data bound into the comprobante templates
type documentView struct {
	OrderNumber  string
	Date         string
	CustomerName string
	Items        []itemView
	Subtotal     string
	Tax          string
	Total        string
}

func buildView(data appcomprobante.Data) documentView {
	items := make([]itemView, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, itemView{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   currency.FormatCOP(item.UnitPrice),
			Subtotal:    currency.FormatCOP(item.Subtotal),
		})
	}

	customerName := data.CustomerName
	if customerName == "" {
		customerName = "Cliente"
	}

	return documentView{
		OrderNumber:  data.OrderID.String(),
		Date:         data.OrderDate.Format("02/01/2006 15:04"),
		CustomerName: customerName,
		Items:        items,
		Total:        currency.FormatCOP(data.Total),
	}
}

// SplitIVA breaks a tax-inclusive total into its base and 19% IVA portion
func SplitIVA(total decimal.Decimal) (base, tax decimal.Decimal) {
	base = total.Div(ivaFactor).Round(2)
	tax = total.Sub(base)
	return base, tax
}

// FacturaGenerator renders the full invoice variant with the IVA breakdown
type FacturaGenerator struct {
	renderer PDFRenderer
	tmpl     *template.Template
	timeout  time.Duration
}

// NewFacturaGenerator creates a new FacturaGenerator
func NewFacturaGenerator(renderer PDFRenderer, timeout time.Duration) (*FacturaGenerator, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/factura.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse factura template: %w", err)
	}
	return &FacturaGenerator{renderer: renderer, tmpl: tmpl, timeout: timeout}, nil
}

// Type returns the comprobante type this generator handles
func (g *FacturaGenerator) Type() string {
	return appcomprobante.TypeFactura
}

// Generate renders a factura PDF for an order
func (g *FacturaGenerator) Generate(ctx context.Context, data appcomprobante.Data) ([]byte, error) {
	view := buildView(data)
	base, tax := SplitIVA(data.Total)
	view.Subtotal = currency.FormatCOP(base)
	view.Tax = currency.FormatCOP(tax)

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render factura template: %w", err)
	}

	result, err := g.renderer.Render(ctx, &RenderRequest{
		HTML:    buf.String(),
		Title:   "Factura " + view.OrderNumber,
		Timeout: g.timeout,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// ChequeGenerator renders the simple payment receipt variant without a tax
// breakdown
type ChequeGenerator struct {
	renderer PDFRenderer
	tmpl     *template.Template
	timeout  time.Duration
}

// NewChequeGenerator creates a new ChequeGenerator
func NewChequeGenerator(renderer PDFRenderer, timeout time.Duration) (*ChequeGenerator, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/cheque.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse cheque template: %w", err)
	}
	return &ChequeGenerator{renderer: renderer, tmpl: tmpl, timeout: timeout}, nil
}

// Type returns the comprobante type this generator handles
func (g *ChequeGenerator) Type() string {
	return appcomprobante.TypeCheque
}

// Generate renders a payment receipt PDF for an order
func (g *ChequeGenerator) Generate(ctx context.Context, data appcomprobante.Data) ([]byte, error) {
	view := buildView(data)

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render cheque template: %w", err)
	}

	result, err := g.renderer.Render(ctx, &RenderRequest{
		HTML:    buf.String(),
		Title:   "Comprobante " + view.OrderNumber,
		Timeout: g.timeout,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

var (
	_ appcomprobante.Generator = (*FacturaGenerator)(nil)
	_ appcomprobante.Generator = (*ChequeGenerator)(nil)
)
