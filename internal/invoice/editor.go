package invoice

import (
	"fmt"

	"github.com/rs/zerolog"

	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// Editor applies input changes to one invoice and recomputes the affected
// derived fields synchronously after each change. It keeps the per-line
// snapshot state needed to tell real input changes from its own writes.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	inv    *models.Invoice
	calc   *Calculator
	states []LineState
	log    zerolog.Logger
}

// NewEditor wraps inv, adding a first line if it has none, and brings every
// derived field up to date.
func NewEditor(inv *models.Invoice, calc *Calculator) (*Editor, error) {
	if inv == nil {
		return nil, NewProcessingError("NewEditor", ErrNilInvoice, "")
	}
	if len(inv.Items) == 0 {
		inv.Items = append(inv.Items, NewLineItem())
	}
	e := &Editor{
		inv:    inv,
		calc:   calc,
		states: make([]LineState, len(inv.Items)),
		log:    logger.WithComponent("invoice-editor"),
	}
	for i := range inv.Items {
		e.recalculateLine(i)
	}
	e.calc.applyTotals(inv)
	return e, nil
}

// Invoice returns the invoice being edited.
func (e *Editor) Invoice() *models.Invoice {
	return e.inv
}

// SetRate changes the rate of line i.
func (e *Editor) SetRate(i int, rate string) error {
	return e.updateLine("SetRate", i, func(item *models.LineItem) {
		item.Rate = money.Amount(rate)
	})
}

// SetVATPercentage changes the VAT percentage of line i.
func (e *Editor) SetVATPercentage(i int, pct string) error {
	return e.updateLine("SetVATPercentage", i, func(item *models.LineItem) {
		item.VATPercentage = money.Amount(pct)
	})
}

// SetExtraAmount changes the amount of extra j on line i.
func (e *Editor) SetExtraAmount(i, j int, amount string) error {
	return e.updateExtra("SetExtraAmount", i, j, func(x *models.ExtraDeliverable) {
		x.Amount = money.Amount(amount)
	})
}

// SetExtraVATPercentage changes the VAT percentage of extra j on line i.
func (e *Editor) SetExtraVATPercentage(i, j int, pct string) error {
	return e.updateExtra("SetExtraVATPercentage", i, j, func(x *models.ExtraDeliverable) {
		x.VATPercentage = money.Amount(pct)
	})
}

// SetExtraShowVAT toggles whether extra j on line i displays its VAT. It has
// no effect on any amount.
func (e *Editor) SetExtraShowVAT(i, j int, show bool) error {
	return e.updateExtra("SetExtraShowVAT", i, j, func(x *models.ExtraDeliverable) {
		x.ShowVAT = show
	})
}

// SetCharges replaces the discount, tax and shipping settings.
func (e *Editor) SetCharges(discount, tax, shipping models.Charge) {
	e.inv.Discount, e.inv.Tax, e.inv.Shipping = discount, tax, shipping
	e.calc.applyTotals(e.inv)
}

// SetCurrency changes the invoice currency, which only affects the words rendering.
func (e *Editor) SetCurrency(code string) {
	e.inv.Currency = code
	e.calc.applyTotals(e.inv)
}

// AddLine appends an empty line and returns its index.
func (e *Editor) AddLine() int {
	e.inv.Items = append(e.inv.Items, NewLineItem())
	e.states = append(e.states, LineState{})
	i := len(e.inv.Items) - 1
	e.recalculateLine(i)
	e.calc.applyTotals(e.inv)
	return i
}

// RemoveLine deletes line i. The last remaining line cannot be removed.
func (e *Editor) RemoveLine(i int) error {
	const op = "RemoveLine"

	if err := e.checkLine(op, i); err != nil {
		return err
	}
	if len(e.inv.Items) == 1 {
		return NewProcessingError(op, ErrLastLineItem, "")
	}

	e.inv.Items = append(e.inv.Items[:i], e.inv.Items[i+1:]...)
	e.states = append(e.states[:i], e.states[i+1:]...)
	e.calc.applyTotals(e.inv)

	e.log.Debug().Int("line", i).Int("remaining", len(e.inv.Items)).Msg("Removed line item")
	return nil
}

// AddExtra appends an empty extra deliverable to line i and returns its index.
func (e *Editor) AddExtra(i int) (int, error) {
	const op = "AddExtra"

	if err := e.checkLine(op, i); err != nil {
		return 0, err
	}
	item := &e.inv.Items[i]
	item.ExtraDeliverables = append(item.ExtraDeliverables, NewExtraDeliverable())
	e.recalculateLine(i)
	e.calc.applyTotals(e.inv)
	return len(item.ExtraDeliverables) - 1, nil
}

// RemoveExtra deletes extra j from line i.
func (e *Editor) RemoveExtra(i, j int) error {
	const op = "RemoveExtra"

	if err := e.checkExtra(op, i, j); err != nil {
		return err
	}
	item := &e.inv.Items[i]
	item.ExtraDeliverables = append(item.ExtraDeliverables[:j], item.ExtraDeliverables[j+1:]...)
	e.recalculateLine(i)
	e.calc.applyTotals(e.inv)
	return nil
}

func (e *Editor) updateLine(op string, i int, mutate func(*models.LineItem)) error {
	if err := e.checkLine(op, i); err != nil {
		return err
	}
	mutate(&e.inv.Items[i])
	if e.recalculateLine(i) {
		e.calc.applyTotals(e.inv)
	}
	return nil
}

func (e *Editor) updateExtra(op string, i, j int, mutate func(*models.ExtraDeliverable)) error {
	if err := e.checkExtra(op, i, j); err != nil {
		return err
	}
	mutate(&e.inv.Items[i].ExtraDeliverables[j])
	if e.recalculateLine(i) {
		e.calc.applyTotals(e.inv)
	}
	return nil
}

func (e *Editor) recalculateLine(i int) bool {
	return e.calc.lines.Recalculate(&e.inv.Items[i], &e.states[i])
}

func (e *Editor) checkLine(op string, i int) error {
	if i < 0 || i >= len(e.inv.Items) {
		return NewProcessingError(op, ErrLineIndexOutOfRange, fmt.Sprintf("index %d of %d", i, len(e.inv.Items)))
	}
	return nil
}

func (e *Editor) checkExtra(op string, i, j int) error {
	if err := e.checkLine(op, i); err != nil {
		return err
	}
	n := len(e.inv.Items[i].ExtraDeliverables)
	if j < 0 || j >= n {
		return NewProcessingError(op, ErrExtraIndexOutOfRange, fmt.Sprintf("line %d, index %d of %d", i, j, n))
	}
	return nil
}
