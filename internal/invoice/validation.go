package invoice

import (
	"fmt"

	"github.com/rs/zerolog"

	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// Verifier compares the derived fields stored on an invoice with a fresh
// recomputation from its inputs
type Verifier struct {
	calc *Calculator
	log  zerolog.Logger
}

// NewVerifier creates a new totals verifier
func NewVerifier(fallbackCurrency string) *Verifier {
	return &Verifier{
		calc: NewCalculator(fallbackCurrency),
		log:  logger.WithComponent("totals-verifier"),
	}
}

// Discrepancy is one stored field that differs from its recomputed value.
type Discrepancy struct {
	Field    string `json:"field"`
	Stored   string `json:"stored"`
	Expected string `json:"expected"`
}

// VerificationResult contains the drift found on one invoice
type VerificationResult struct {
	Discrepancies  []Discrepancy `json:"discrepancies,omitempty"`
	Warnings       []string      `json:"warnings,omitempty"`
	HasDiscrepancy bool          `json:"hasDiscrepancy"`
}

// Verify recomputes a copy of inv and reports every stored derived field that
// drifted. inv itself is not modified.
func (v *Verifier) Verify(inv *models.Invoice) *VerificationResult {
	result := &VerificationResult{}
	if inv == nil {
		return result
	}

	fresh := Clone(inv)
	_, _ = v.calc.Recalculate(fresh)

	for i := range inv.Items {
		stored, expected := &inv.Items[i], &fresh.Items[i]
		prefix := fmt.Sprintf("items[%d]", i)

		for j := range stored.ExtraDeliverables {
			v.compare(result, fmt.Sprintf("%s.extraDeliverables[%d].vat", prefix, j),
				stored.ExtraDeliverables[j].VAT, expected.ExtraDeliverables[j].VAT)
		}
		if !stored.Rate.Present() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s has no rate; stored VAT %q and total %q are kept as entered", prefix, stored.VATAmount, stored.Total))
			continue
		}
		v.compare(result, prefix+".vatAmount", stored.VATAmount, expected.VATAmount)
		v.compare(result, prefix+".total", stored.Total, expected.Total)
	}

	v.compare(result, "subTotal", inv.SubTotal, fresh.SubTotal)
	v.compare(result, "totalAmount", inv.TotalAmount, fresh.TotalAmount)

	if result.HasDiscrepancy {
		v.log.Warn().
			Str("invoice", inv.InvoiceNumber).
			Int("discrepancies", len(result.Discrepancies)).
			Msg("Stored invoice totals differ from recomputation")
	} else {
		v.log.Debug().
			Str("invoice", inv.InvoiceNumber).
			Msg("Stored invoice totals match recomputation")
	}

	return result
}

// compare treats stored values numerically so "110" and "110.00" agree.
func (v *Verifier) compare(result *VerificationResult, field, stored, expected string) {
	if money.Normalize(stored) == expected {
		return
	}
	result.Discrepancies = append(result.Discrepancies, Discrepancy{
		Field:    field,
		Stored:   stored,
		Expected: expected,
	})
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("%s: stored %q, recomputed %s", field, stored, expected))
	result.HasDiscrepancy = true
}
