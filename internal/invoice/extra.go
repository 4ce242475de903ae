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

// ExtraVAT returns round(amount × vatPercentage / 100) when both inputs are
// present, and zero otherwise. An amount of exactly zero counts as present.
func ExtraVAT(amount, vatPercentage money.Amount) decimal.Decimal {
	if !amount.Present() || !vatPercentage.Present() {
		return decimal.Zero
	}
	return money.Percent(amount.Decimal(), vatPercentage.Decimal())
}

// ExtraInputsKey derives the snapshot key of the inputs of every extra
// deliverable. The derived vat field is deliberately not part of the key, so
// writing it back never looks like an input change. Fields are quoted and the
// key starts with the extra count, so distinct lists never share a key.
func ExtraInputsKey(extras []models.ExtraDeliverable) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(extras)))
	for _, e := range extras {
		b.WriteByte(';')
		b.WriteString(strconv.Quote(strings.TrimSpace(e.Amount.String())))
		b.WriteByte('|')
		b.WriteString(strconv.Quote(strings.TrimSpace(e.VATPercentage.String())))
	}
	return b.String()
}

// ExtraCalculator recomputes the vat of extra deliverables.
type ExtraCalculator struct {
	log zerolog.Logger
}

// NewExtraCalculator creates a new extra deliverable calculator
func NewExtraCalculator() *ExtraCalculator {
	return &ExtraCalculator{
		log: logger.WithComponent("extra-calculator"),
	}
}

// Recalculate recomputes vat for each extra when the input snapshot differs from
// prevKey. It returns the current snapshot key, which the caller keeps for the
// next call, and whether any vat field was written.
func (c *ExtraCalculator) Recalculate(extras []models.ExtraDeliverable, prevKey string) (string, bool) {
	key := ExtraInputsKey(extras)
	if key == prevKey {
		return key, false
	}

	changed := false
	for i := range extras {
		if c.apply(&extras[i], i) {
			changed = true
		}
	}

	c.log.Debug().
		Int("extras", len(extras)).
		Bool("changed", changed).
		Msg("Recalculated extra deliverables")

	return key, changed
}

// Apply recomputes the vat of a single extra and reports whether it was written.
func (c *ExtraCalculator) Apply(extra *models.ExtraDeliverable) bool {
	return c.apply(extra, -1)
}

func (c *ExtraCalculator) apply(extra *models.ExtraDeliverable, index int) bool {
	if extra.Amount.Present() {
		if _, ok := money.Parse(extra.Amount.String()); !ok {
			c.log.Debug().Int("extra", index).Str("amount", extra.Amount.String()).Msg("Coercing malformed amount to zero")
		}
	}

	vat := money.Format(ExtraVAT(extra.Amount, extra.VATPercentage))
	if vat == extra.VAT {
		return false
	}
	extra.VAT = vat
	return true
}
