package models

// Product represents a single record of the product feed
type Product struct {
	Code            string  `json:"code"`
	PrimaryImageURL string  `json:"primaryImageUrl"`
	Title           string  `json:"title"`
	AssocProducts   string  `json:"assocProducts"` // Semicolon-delimited, may contain duplicates
	PriceGold       float64 `json:"priceGold"`
	PriceRetail     float64 `json:"priceRetail"`
	PriceGoldAlt    float64 `json:"priceGoldAlt"`
	PriceRetailAlt  float64 `json:"priceRetailAlt"`
	Unit            string  `json:"unit"`     // Primary unit (e.g., "упак.")
	UnitAlt         string  `json:"unitAlt"`  // Alternate unit (e.g., "м. кв.")
	UnitFull        string  `json:"unitFull"` // Full name of the primary unit (e.g., "упаковка")
	UnitRatio       float64 `json:"unitRatio"`
	UnitRatioAlt    float64 `json:"unitRatioAlt"` // Alternate units per one primary unit
	ProductID       string  `json:"productId"`
}

// HasAlternateUnit reports whether the product is sold in a second unit
func (p Product) HasAlternateUnit() bool {
	return p.Unit != p.UnitAlt
}
