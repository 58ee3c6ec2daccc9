package prices

import "time"

// PricePoint is one cleaned price observation.
type PricePoint struct {
	Date        time.Time `json:"date"`
	Asset       string    `json:"asset"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"` // Optional CSV column
}

// AssetMeta describes one distinct asset in the price table.
type AssetMeta struct {
	Asset       string `json:"asset"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}
