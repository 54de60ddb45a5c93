// Package rentals manages rentals and aggregates them for reporting.
package rentals

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentbrasil/rentbrasil/internal/pricing"
)

// PaymentStatus is the payment state of a rental.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "pago"
	StatusPending PaymentStatus = "pendente"
)

// IsPaid reports whether s counts as paid. Anything else counts as pending.
func (s PaymentStatus) IsPaid() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(StatusPaid))
}

// Rental is a booking of one item by one tenant, joined with the item's name
// and daily rate and the tenant's name.
type Rental struct {
	ID            string
	ItemID        string
	ItemName      string
	StartDate     time.Time
	EndDate       time.Time
	PaymentStatus PaymentStatus
	TenantID      string
	TenantName    string
	DailyRate     decimal.Decimal
}

type rentalJSON struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_nome,omitempty"`
	StartDate     string          `json:"data_inicio"`
	EndDate       string          `json:"data_fim"`
	PaymentStatus PaymentStatus   `json:"status_pagamento"`
	TenantID      string          `json:"locatario_id"`
	TenantName    string          `json:"locatario_nome,omitempty"`
	DailyRate     decimal.Decimal `json:"preco_diario"`
}

// MarshalJSON renders dates as YYYY-MM-DD.
func (r Rental) MarshalJSON() ([]byte, error) {
	return json.Marshal(rentalJSON{
		ID:            r.ID,
		ItemID:        r.ItemID,
		ItemName:      r.ItemName,
		StartDate:     pricing.FormatDate(r.StartDate),
		EndDate:       pricing.FormatDate(r.EndDate),
		PaymentStatus: r.PaymentStatus,
		TenantID:      r.TenantID,
		TenantName:    r.TenantName,
		DailyRate:     r.DailyRate,
	})
}

// View is the processed admin row: the rental plus its day count and total.
type View struct {
	Rental
	Days  int
	Total decimal.Decimal
}

// MarshalJSON flattens the rental and adds dias and valor_total.
func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		rentalJSON
		Days  int             `json:"dias"`
		Total decimal.Decimal `json:"valor_total"`
	}{
		rentalJSON: rentalJSON{
			ID:            v.ID,
			ItemID:        v.ItemID,
			ItemName:      v.ItemName,
			StartDate:     pricing.FormatDate(v.StartDate),
			EndDate:       pricing.FormatDate(v.EndDate),
			PaymentStatus: v.PaymentStatus,
			TenantID:      v.TenantID,
			TenantName:    v.TenantName,
			DailyRate:     v.DailyRate,
		},
		Days:  v.Days,
		Total: v.Total,
	})
}

// Draft is the editable part of a Rental. Dates are YYYY-MM-DD.
type Draft struct {
	ItemID        string        `json:"item_id" validate:"required"`
	TenantID      string        `json:"locatario_id" validate:"required"`
	StartDate     string        `json:"data_inicio" validate:"required,datetime=2006-01-02"`
	EndDate       string        `json:"data_fim" validate:"required,datetime=2006-01-02"`
	PaymentStatus PaymentStatus `json:"status_pagamento" validate:"oneof=pago pendente"`
}

// DraftFrom returns the draft that would recreate r.
func DraftFrom(r Rental) Draft {
	return Draft{
		ItemID:        r.ItemID,
		TenantID:      r.TenantID,
		StartDate:     pricing.FormatDate(r.StartDate),
		EndDate:       pricing.FormatDate(r.EndDate),
		PaymentStatus: r.PaymentStatus,
	}
}

// DraftFromView is DraftFrom for admin rows.
func DraftFromView(v View) Draft {
	return DraftFrom(v.Rental)
}

func (d Draft) normalized() Draft {
	d.ItemID = strings.TrimSpace(d.ItemID)
	d.TenantID = strings.TrimSpace(d.TenantID)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
	d.PaymentStatus = PaymentStatus(strings.ToLower(strings.TrimSpace(string(d.PaymentStatus))))
	if d.PaymentStatus == "" {
		d.PaymentStatus = StatusPending
	}
	return d
}
