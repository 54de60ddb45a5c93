// Package requests manages item requests: residents asking for something
// nobody has listed yet.
package requests

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Request is a demand-side listing.
type Request struct {
	ID                string           `json:"id"`
	RequesterID       string           `json:"usuario_id"`
	ItemName          string           `json:"nome_item"`
	PhotoURL          string           `json:"foto_url,omitempty"`
	IntendedDailyRate *decimal.Decimal `json:"pretende_pagar_diario,omitempty"`
	Notes             string           `json:"observacoes,omitempty"`
}

// Draft is the editable part of a Request.
type Draft struct {
	RequesterID       string           `json:"usuario_id" validate:"required"`
	ItemName          string           `json:"nome_item" validate:"required"`
	PhotoURL          string           `json:"foto_url" validate:"omitempty,url"`
	IntendedDailyRate *decimal.Decimal `json:"pretende_pagar_diario"`
	Notes             string           `json:"observacoes"`
}

// DraftFrom returns the draft that would recreate r.
func DraftFrom(r Request) Draft {
	return Draft{
		RequesterID:       r.RequesterID,
		ItemName:          r.ItemName,
		PhotoURL:          r.PhotoURL,
		IntendedDailyRate: r.IntendedDailyRate,
		Notes:             r.Notes,
	}
}

func (d Draft) normalized() Draft {
	d.RequesterID = strings.TrimSpace(d.RequesterID)
	d.ItemName = strings.TrimSpace(d.ItemName)
	d.PhotoURL = strings.TrimSpace(d.PhotoURL)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

func (d Draft) request(id string) Request {
	return Request{
		ID:                id,
		RequesterID:       d.RequesterID,
		ItemName:          d.ItemName,
		PhotoURL:          d.PhotoURL,
		IntendedDailyRate: d.IntendedDailyRate,
		Notes:             d.Notes,
	}
}
