package invoice

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// LineQuantity is the fixed quantity of every line: one passenger or unit.
const LineQuantity = 1

// LineResult holds the derived fields of a single line item.
type LineResult struct {
	VATAmount string
	Total     string
}

// LineVAT returns round(rate × vatPercentage / 100) when both are present,
// the percentage is not negative and the rate is positive. Otherwise zero.
func LineVAT(rate, vatPercentage money.Amount) decimal.Decimal {
	if !rate.Present() || !vatPercentage.Present() {
		return decimal.Zero
	}
	r, pct := rate.Decimal(), vatPercentage.Decimal()
	if pct.IsNegative() || !r.IsPositive() {
		return decimal.Zero
	}
	return money.Percent(r, pct)
}

// LineTotal returns round(rate + vat + Σ extra.amount + Σ extra.vat).
// Every extra's vat is included whatever its ShowVAT flag says.
func LineTotal(rate money.Amount, vat decimal.Decimal, extras []models.ExtraDeliverable) decimal.Decimal {
	total := rate.Decimal().Add(vat)
	for _, e := range extras {
		total = total.Add(e.Amount.Decimal()).Add(money.Coerce(e.VAT))
	}
	return money.Round(total)
}

// CalculateLine computes the derived fields of a line whose extras already
// carry their resolved vat. ok is false when rate is absent, in which case no
// computation takes place and the caller keeps whatever it had.
func CalculateLine(rate, vatPercentage money.Amount, extras []models.ExtraDeliverable) (LineResult, bool) {
	if !rate.Present() {
		return LineResult{}, false
	}
	vat := LineVAT(rate, vatPercentage)
	return LineResult{
		VATAmount: money.Format(vat),
		Total:     money.Format(LineTotal(rate, vat, extras)),
	}, true
}

// LineInputsKey derives the snapshot key of everything a line's derived
// fields depend on. The line's own vatAmount and total are not part of it.
func LineInputsKey(item *models.LineItem) string {
	var b strings.Builder
	b.WriteString(strconv.Quote(strings.TrimSpace(item.Rate.String())))
	b.WriteByte('|')
	b.WriteString(strconv.Quote(strings.TrimSpace(item.VATPercentage.String())))
	b.WriteByte('#')
	b.WriteString(strconv.Itoa(len(item.ExtraDeliverables)))
	for _, e := range item.ExtraDeliverables {
		b.WriteByte(';')
		b.WriteString(strconv.Quote(strings.TrimSpace(e.Amount.String())))
		b.WriteByte('|')
		b.WriteString(strconv.Quote(e.VAT))
	}
	return b.String()
}

// LineState remembers the last seen inputs of one line item. The zero value
// forces a full recomputation on first use.
type LineState struct {
	ExtrasKey string
	InputsKey string
	primed    bool
}

// LineCalculator recomputes a line item's derived fields on input change.
type LineCalculator struct {
	extras *ExtraCalculator
	log    zerolog.Logger
}

// NewLineCalculator creates a new line item calculator
func NewLineCalculator() *LineCalculator {
	return &LineCalculator{
		extras: NewExtraCalculator(),
		log:    logger.WithComponent("line-calculator"),
	}
}

// Recalculate brings item up to date: extras first, then VAT, then total.
// It reports whether any field of item was written. When rate is absent the
// previously stored VAT and total are left untouched.
func (c *LineCalculator) Recalculate(item *models.LineItem, state *LineState) bool {
	if state == nil {
		state = &LineState{}
	}

	changed := false
	if item.Quantity != LineQuantity {
		item.Quantity = LineQuantity
		changed = true
	}

	extrasKey := state.ExtrasKey
	if !state.primed {
		// An unprimed state always recomputes extras.
		extrasKey = "\x00"
	}
	key, extrasChanged := c.extras.Recalculate(item.ExtraDeliverables, extrasKey)
	state.ExtrasKey = key
	changed = changed || extrasChanged

	if !item.Rate.Present() {
		c.log.Debug().
			Str("passenger", item.PassengerName).
			Msg("Rate is empty, keeping stored VAT and total")
		state.primed = true
		return changed
	}

	inputs := LineInputsKey(item)
	if state.primed && inputs == state.InputsKey {
		return changed
	}

	if _, ok := money.Parse(item.Rate.String()); !ok {
		c.log.Debug().Str("rate", item.Rate.String()).Msg("Coercing malformed rate to zero")
	}

	result, _ := CalculateLine(item.Rate, item.VATPercentage, item.ExtraDeliverables)
	if result.VATAmount != item.VATAmount {
		item.VATAmount = result.VATAmount
		changed = true
	}
	if result.Total != item.Total {
		item.Total = result.Total
		changed = true
	}

	state.InputsKey = inputs
	state.primed = true
	return changed
}
