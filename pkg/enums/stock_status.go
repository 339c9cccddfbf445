package enums

import "fmt"

// StockStatus describes product availability.
type StockStatus string

const (
	StockStatusAvailable  StockStatus = "AVAILABLE"
	StockStatusSeasonal   StockStatus = "SEASONAL"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

var validStockStatuses = []StockStatus{
	StockStatusAvailable,
	StockStatusSeasonal,
	StockStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// SchemaAvailability maps the status onto the schema.org availability vocabulary.
func (s StockStatus) SchemaAvailability() string {
	switch s {
	case StockStatusOutOfStock:
		return "https://schema.org/OutOfStock"
	case StockStatusSeasonal:
		return "https://schema.org/LimitedAvailability"
	default:
		return "https://schema.org/InStock"
	}
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
