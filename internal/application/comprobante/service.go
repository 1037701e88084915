package comprobante

import (
	"context"
	"fmt"
	"strings"
)

// Comprobante types selectable through the download URL
const (
	TypeFactura = "factura"
	TypeCheque  = "cheque"
)

// Generator renders one comprobante variant as a PDF document
type Generator interface {
	// Type identifies the variant this generator produces
	Type() string
	// Generate renders the document for the given order data
	Generate(ctx context.Context, data Data) ([]byte, error)
}

// Service selects the comprobante variant for a requested type. Only
// "factura" maps to the invoice layout; every other value falls back to the
// cheque layout.
type Service struct {
	generators map[string]Generator
	fallback   Generator
}

// NewService creates a Service. The cheque generator doubles as the fallback
// for unknown types.
func NewService(factura, cheque Generator) *Service {
	return &Service{
		generators: map[string]Generator{
			factura.Type(): factura,
			cheque.Type():  cheque,
		},
		fallback: cheque,
	}
}

// Generate renders the comprobante and returns the download filename together
// with the PDF bytes.
func (s *Service) Generate(ctx context.Context, tipo string, data Data) (string, []byte, error) {
	tipo = strings.ToLower(strings.TrimSpace(tipo))

	generator, ok := s.generators[tipo]
	if !ok {
		generator = s.fallback
		tipo = generator.Type()
	}

	pdf, err := generator.Generate(ctx, data)
	if err != nil {
		return "", nil, err
	}
	return FileName(tipo, data), pdf, nil
}

// FileName builds the attachment name served to the browser
func FileName(tipo string, data Data) string {
	return fmt.Sprintf("%s_pedido_%s.pdf", tipo, data.OrderID)
}
