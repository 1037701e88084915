package comprobante

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a purchased line as printed on a comprobante
type Item struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Data carries everything a generator needs to render a comprobante for an
// order. Amounts are the snapshotted order amounts, never live catalog
// prices.
type Data struct {
	OrderID      uuid.UUID
	OrderDate    time.Time
	CustomerName string
	Items        []Item
	Total        decimal.Decimal
}
