// Package statement builds client-facing statements out of several issued
// invoices. A statement is a derived, read-only view: invoices are sorted by
// date, every line item becomes one row, and the statement total is the sum of
// the line totals. Source invoices are never modified.
package statement

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"invoicekit/internal/invoice"
	"invoicekit/internal/logger"
	"invoicekit/internal/money"
	"invoicekit/pkg/models"
)

// Request is everything a caller supplies to build a statement.
type Request struct {
	Invoices     []*models.Invoice   `validate:"required,min=1,dive,required"`
	BilledToName string              `validate:"max=200"`
	DateFrom     string              `validate:"max=64"`
	DateTo       string              `validate:"max=64"`
	BankDetails  []models.BankDetail `validate:"dive"`
}

// Service validates statement requests and runs the aggregation.
type Service struct {
	validate         *validator.Validate
	verifier         *invoice.Verifier
	fallbackCurrency string
	now              func() time.Time
	newID            func() string
	log              zerolog.Logger
}

// NewService creates a statement service. fallbackCurrency applies when the
// first invoice names no valid currency.
func NewService(fallbackCurrency string) *Service {
	fallback := money.NormalizeCurrency(fallbackCurrency, money.DefaultCurrency)
	return &Service{
		validate:         validator.New(),
		verifier:         invoice.NewVerifier(fallback),
		fallbackCurrency: fallback,
		now:              time.Now,
		newID:            uuid.NewString,
		log:              logger.WithComponent("statement"),
	}
}

// Build validates req and aggregates its invoices into a Statement. An empty
// invoice list is rejected with ErrEmptyInvoiceSet and nothing is built.
func (s *Service) Build(req Request) (*models.Statement, error) {
	if err := s.check(req); err != nil {
		s.log.Warn().Err(err).Msg("Rejected statement request")
		return nil, err
	}

	for _, inv := range req.Invoices {
		if result := s.verifier.Verify(inv); result.HasDiscrepancy {
			s.log.Warn().
				Str("invoice", inv.InvoiceNumber).
				Strs("warnings", result.Warnings).
				Msg("Invoice totals drifted from their inputs; statement uses stored line totals")
		}
	}

	rows, total, currency := aggregate(req.Invoices, s.fallbackCurrency)

	stmt := &models.Statement{
		ID:           s.newID(),
		Rows:         rows,
		Total:        total,
		TotalInWords: invoice.AmountInWords(money.Coerce(total), currency),
		Currency:     currency,
		BilledToName: req.BilledToName,
		DateRange:    models.DateRange{From: req.DateFrom, To: req.DateTo},
		BankDetails:  req.BankDetails,
		GeneratedAt:  s.now().UTC(),
	}

	s.log.Info().
		Str("statement_id", stmt.ID).
		Int("invoices", len(req.Invoices)).
		Int("rows", len(rows)).
		Str("total", total).
		Str("currency", currency).
		Msg("Statement built")

	return stmt, nil
}

func (s *Service) check(req Request) error {
	if len(req.Invoices) == 0 {
		return &RequestError{Field: "Invoices", Message: "no invoices selected", Err: ErrEmptyInvoiceSet}
	}

	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &RequestError{Err: errors.Join(ErrInvalidRequest, err)}
	}
	fe := verrs[0]
	return &RequestError{
		Field:   fe.Namespace(),
		Message: "failed '" + fe.Tag() + "' check",
		Err:     ErrInvalidRequest,
	}
}

// SelectBankDetails returns the saved bank details whose account numbers are
// listed in accounts, in saved order. No accounts selects nothing.
func SelectBankDetails(saved []models.BankDetail, accounts []string) []models.BankDetail {
	if len(accounts) == 0 {
		return nil
	}
	want := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		want[a] = true
	}
	var out []models.BankDetail
	for _, b := range saved {
		if want[b.AccountNumber] {
			out = append(out, b)
		}
	}
	return out
}
