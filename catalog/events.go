package catalog

import (
	"fmt"

	"product-catalog/models"
)

// EventKind identifies an inbound user event
type EventKind string

const (
	EventPageClick     EventKind = "page_click"
	EventUnitClick     EventKind = "unit_click"
	EventQuantityInput EventKind = "quantity_input"
	EventStepUp        EventKind = "step_up"
	EventStepDown      EventKind = "step_down"
)

// Event is a user interaction with the catalog.
// Value carries the page label, the unit mode or the typed quantity.
type Event struct {
	Kind   EventKind
	CardID string
	Value  string
}

// Dispatch routes ev to its handler
func (c *Controller) Dispatch(ev Event) error {
	var err error
	switch ev.Kind {
	case EventPageClick:
		return c.HandlePageClick(ev.Value)
	case EventUnitClick:
		_, err = c.HandleUnitClick(ev.CardID, models.UnitMode(ev.Value))
	case EventQuantityInput:
		_, err = c.HandleQuantityInput(ev.CardID, ev.Value)
	case EventStepUp:
		_, err = c.HandleStepUp(ev.CardID)
	case EventStepDown:
		_, err = c.HandleStepDown(ev.CardID)
	default:
		err = fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return err
}
