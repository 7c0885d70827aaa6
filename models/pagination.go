package models

// PageRequest represents a single pagination request
type PageRequest struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	LeadSlots  int `json:"leadSlots"` // Page 1 slots taken by static lead cards not drawn from the feed
}

// SlotKind identifies the role of a pagination slot
type SlotKind string

const (
	SlotFirst    SlotKind = "first"
	SlotEllipsis SlotKind = "ellipsis"
	SlotPrevious SlotKind = "previous"
	SlotCurrent  SlotKind = "current"
	SlotNext     SlotKind = "next"
	SlotLast     SlotKind = "last"
)

// PaginationSlot is one of the seven fixed positions of the pagination control
type PaginationSlot struct {
	Kind      SlotKind `json:"kind"`
	Label     string   `json:"label"`
	Page      int      `json:"page"` // 0 for ellipsis slots
	IsCurrent bool     `json:"isCurrent"`
	Hidden    bool     `json:"hidden"`
}

// PaginationButton is a visible pagination control
type PaginationButton struct {
	Label     string `json:"label"`
	IsCurrent bool   `json:"isCurrent"`
}

// PaginationWindow represents the derived state of the pagination control
type PaginationWindow struct {
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Slots      []PaginationSlot `json:"slots"`
}

// VisibleButtons returns the non-hidden slots in display order
func (w PaginationWindow) VisibleButtons() []PaginationButton {
	buttons := make([]PaginationButton, 0, len(w.Slots))
	for _, slot := range w.Slots {
		if slot.Hidden {
			continue
		}
		buttons = append(buttons, PaginationButton{Label: slot.Label, IsCurrent: slot.IsCurrent})
	}
	return buttons
}
