package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is how add_date and paid_date are rendered
const DateLayout = "2006-01-02"

// Invoice is an amount owed by a company
type Invoice struct {
	ID       uint                `gorm:"primaryKey"`
	CompCode *string             `gorm:"type:text;not null;index"`
	Amt      decimal.NullDecimal `gorm:"type:numeric(10,2);not null"`
	Paid     *bool               `gorm:"not null;default:false"`
	AddDate  time.Time           `gorm:"type:date;not null"`
	PaidDate *time.Time          `gorm:"type:date"`
	Company  *Company            `gorm:"foreignKey:CompCode;references:Code"`
}

// TableName overrides the table name used by Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceSummary is one entry of the invoice listing
type InvoiceSummary struct {
	ID       uint   `json:"id"`
	CompCode string `json:"comp_code"`
}

// InvoiceView is the public shape of a single invoice row
type InvoiceView struct {
	ID       uint        `json:"id"`
	CompCode string      `json:"comp_code"`
	Amt      json.Number `json:"amt"`
	Paid     bool        `json:"paid"`
	AddDate  string      `json:"add_date"`
	PaidDate *string     `json:"paid_date"`
}

// InvoiceDetail embeds the owning company instead of its code
type InvoiceDetail struct {
	ID       uint        `json:"id"`
	Amt      json.Number `json:"amt"`
	Paid     bool        `json:"paid"`
	AddDate  string      `json:"add_date"`
	PaidDate *string     `json:"paid_date"`
	Company  CompanyView `json:"company"`
}

// ToInvoiceSummaries converts rows into the {id, comp_code} listing
func ToInvoiceSummaries(invoices []Invoice) []InvoiceSummary {
	out := make([]InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, InvoiceSummary{ID: inv.ID, CompCode: deref(inv.CompCode)})
	}
	return out
}

// ToInvoiceView converts a model to its public shape
func ToInvoiceView(inv Invoice) InvoiceView {
	return InvoiceView{
		ID:       inv.ID,
		CompCode: deref(inv.CompCode),
		Amt:      amount(inv.Amt),
		Paid:     inv.Paid != nil && *inv.Paid,
		AddDate:  FormatDate(inv.AddDate),
		PaidDate: formatOptionalDate(inv.PaidDate),
	}
}

// ToInvoiceDetail converts a model with its owning company embedded
func ToInvoiceDetail(inv Invoice, company Company) InvoiceDetail {
	return InvoiceDetail{
		ID:       inv.ID,
		Amt:      amount(inv.Amt),
		Paid:     inv.Paid != nil && *inv.Paid,
		AddDate:  FormatDate(inv.AddDate),
		PaidDate: formatOptionalDate(inv.PaidDate),
		Company:  ToCompanyView(company),
	}
}

// PaymentTransition names the effect an update had on an invoice's payment state
type PaymentTransition string

const (
	TransitionPaid      PaymentTransition = "paid"
	TransitionUnpaid    PaymentTransition = "unpaid"
	TransitionUnchanged PaymentTransition = "unchanged"
)

// NextPaidDate derives paid_date for an invoice update.
// Paying an invoice with no paid_date stamps today, un-paying always clears it,
// and paying an already paid invoice keeps the existing date.
func NextPaidDate(current *time.Time, paid bool, today time.Time) (*time.Time, PaymentTransition) {
	switch {
	case current == nil && paid:
		d := DateOf(today)
		return &d, TransitionPaid
	case !paid:
		return nil, TransitionUnpaid
	default:
		return current, TransitionUnchanged
	}
}

// DateOf drops the time of day, keeping the calendar date of t
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date column as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

func amount(d decimal.NullDecimal) json.Number {
	if !d.Valid {
		return json.Number("0")
	}
	return json.Number(d.Decimal.String())
}
