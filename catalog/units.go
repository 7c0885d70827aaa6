package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"product-catalog/models"
	"product-catalog/utils"
)

//go:embed units.yaml
var unitsYAML []byte

// UnitLabels maps literal unit strings to the captions shown on a card
type UnitLabels struct {
	Alternate map[string]string `yaml:"alternate"` // keyed by unitAlt
	Full      map[string]string `yaml:"full"`      // keyed by unitFull
	Sale      map[string]string `yaml:"sale"`      // keyed by unit
}

// ParseUnitLabels parses a YAML label table
func ParseUnitLabels(data []byte) (*UnitLabels, error) {
	var raw UnitLabels
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse unit labels: %w", err)
	}

	labels := &UnitLabels{
		Alternate: normalizeKeys(raw.Alternate),
		Full:      normalizeKeys(raw.Full),
		Sale:      normalizeKeys(raw.Sale),
	}
	return labels, nil
}

var defaultLabels = mustParseUnitLabels(unitsYAML)

func mustParseUnitLabels(data []byte) *UnitLabels {
	labels, err := ParseUnitLabels(data)
	if err != nil {
		panic(err)
	}
	return labels
}

// DefaultUnitLabels returns the built-in label table
func DefaultUnitLabels() *UnitLabels {
	return defaultLabels
}

func normalizeKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[unitKey(k)] = v
	}
	return out
}

// unitKey normalizes feed strings so visually identical units compare equal
func unitKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// AlternateLabel returns the caption for the alternate unit, or "" when unknown
func (l *UnitLabels) AlternateLabel(unitAlt string) string {
	return l.Alternate[unitKey(unitAlt)]
}

// FullLabel returns the caption for the primary unit's full name, or "" when unknown
func (l *UnitLabels) FullLabel(unitFull string) string {
	return l.Full[unitKey(unitFull)]
}

// SaleInfo returns how the product is sold, or "" when unknown.
// The trailing colon introduces the conversion line and is dropped when
// there is no alternate unit.
func (l *UnitLabels) SaleInfo(unit string, hasAlternate bool) string {
	info := l.Sale[unitKey(unit)]
	if !hasAlternate {
		info = strings.Replace(info, ":", "", 1)
	}
	return info
}

// Round2 rounds x to two decimals, half-up on the value scaled by 100.
// The scaled value is computed in float64, so Round2(2.005) == 2.01 and
// Round2(1.005) == 1.
func Round2(x float64) float64 {
	scaled := float64(x * 100)
	return math.Floor(scaled+0.5) / 100
}

// ConversionLine formats "{quantity} {unit} = {alternate amount} {unitAlt}"
func ConversionLine(product models.Product, quantity int) string {
	amount := Round2(product.UnitRatioAlt * float64(quantity))
	return fmt.Sprintf("%d %s = %s %s", quantity, product.Unit, utils.FormatAmount(amount), product.UnitAlt)
}

// InitialConversionLine formats the conversion line of a card whose quantity
// was never changed: "{unitRatio} {unit} = {unitRatioAlt} {unitAlt}".
// Products without a positive unit ratio fall back to ConversionLine(product, 1).
func InitialConversionLine(product models.Product) string {
	if product.UnitRatio <= 0 {
		return ConversionLine(product, 1)
	}
	return fmt.Sprintf("%s %s = %s %s",
		utils.FormatAmount(product.UnitRatio), product.Unit,
		utils.FormatAmount(Round2(product.UnitRatioAlt)), product.UnitAlt)
}

// ComputeDisplay computes the prices and unit texts of a card
func ComputeDisplay(product models.Product, quantity int, mode models.UnitMode) models.CardDisplay {
	return defaultLabels.ComputeDisplay(product, quantity, mode)
}

// ComputeDisplay computes the prices and unit texts of a card using l
func (l *UnitLabels) ComputeDisplay(product models.Product, quantity int, mode models.UnitMode) models.CardDisplay {
	if quantity < 1 {
		quantity = 1
	}
	hasAlternate := product.HasAlternateUnit()
	if !hasAlternate || mode != models.UnitModeAlternate {
		mode = models.UnitModePrimary
	}

	display := models.CardDisplay{
		Mode:         mode,
		Quantity:     quantity,
		GoldPrice:    product.PriceGold,
		RetailPrice:  product.PriceRetail,
		HasAlternate: hasAlternate,
		AltUnitLabel: l.AlternateLabel(product.UnitAlt),
		SaleInfo:     l.SaleInfo(product.Unit, hasAlternate),
	}

	if mode == models.UnitModeAlternate {
		display.GoldPrice = Round2(product.PriceGoldAlt)
		display.RetailPrice = Round2(product.PriceRetailAlt)
	}

	if hasAlternate {
		line := ConversionLine(product, quantity)
		display.ConversionLine = &line
		display.FullUnitLabel = l.FullLabel(product.UnitFull)
	}

	return display
}
