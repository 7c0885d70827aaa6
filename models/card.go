package models

// UnitMode selects which measurement unit a card displays
type UnitMode string

const (
	UnitModePrimary   UnitMode = "primary"
	UnitModeAlternate UnitMode = "alternate"
)

// UnitSelection is the per-card interactive state
type UnitSelection struct {
	ActiveUnitMode UnitMode `json:"activeUnitMode"`
	Quantity       int      `json:"quantity"` // Never below 1
	// QuantityEdited is set once the visitor changed the quantity; until then the
	// conversion line starts from the product's unit ratio
	QuantityEdited bool `json:"quantityEdited"`
}

// DefaultUnitSelection returns the state of a freshly rendered card
func DefaultUnitSelection() UnitSelection {
	return UnitSelection{ActiveUnitMode: UnitModePrimary, Quantity: 1}
}

// CardDisplay holds the computed price and unit texts for a card
type CardDisplay struct {
	Mode           UnitMode `json:"mode"`
	Quantity       int      `json:"quantity"`
	GoldPrice      float64  `json:"goldPrice"`
	RetailPrice    float64  `json:"retailPrice"`
	ConversionLine *string  `json:"conversionLine"` // nil when the product has no alternate unit
	HasAlternate   bool     `json:"hasAlternate"`
	AltUnitLabel   string   `json:"altUnitLabel"`  // e.g., "За упаковку"
	FullUnitLabel  string   `json:"fullUnitLabel"` // Empty when there is no alternate unit
	SaleInfo       string   `json:"saleInfo"`      // e.g., "Продается упаковками:"
}

// CardView is everything the renderer needs to draw one card
type CardView struct {
	ID              string      `json:"id"` // Feed position, unique per card
	Product         Product     `json:"product"`
	Display         CardDisplay `json:"display"`
	DisplayCode     string      `json:"displayCode"` // "Код: " plus the code without leading zeros
	ImageURL        string      `json:"imageUrl"`
	AssocTags       []string    `json:"assocTags"`
	TitleText       string      `json:"titleText"` // Title with markup stripped
	GoldPriceText   string      `json:"goldPriceText"`
	RetailPriceText string      `json:"retailPriceText"`
}
