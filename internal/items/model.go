// Package items manages the rentable items residents advertise.
package items

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is a rentable listing.
type Item struct {
	ID           string          `json:"id"`
	AdvertiserID string          `json:"anunciante_id"`
	Name         string          `json:"nome_item"`
	DailyRate    decimal.Decimal `json:"preco_diario"`
	Category     string          `json:"categoria,omitempty"`
	Notes        string          `json:"observacoes,omitempty"`
	PhotoURL     string          `json:"foto_url,omitempty"`
}

// CategoryLabel returns the display label of the item's category.
func (i Item) CategoryLabel() string {
	return CategoryLabel(i.Category)
}

// Draft is the editable part of an Item.
type Draft struct {
	AdvertiserID string          `json:"anunciante_id" validate:"required"`
	Name         string          `json:"nome_item" validate:"required"`
	DailyRate    decimal.Decimal `json:"preco_diario" validate:"gt=0"`
	Category     string          `json:"categoria" validate:"omitempty,oneof=eletronicos_e_acessorios ferramentas_e_equipamentos esportes_e_lazer festas_e_eventos moda_e_acessorios casa_e_jardim brinquedos_e_jogos instrumentos_musicais transporte_e_mobilidade outro"`
	Notes        string          `json:"observacoes"`
	PhotoURL     string          `json:"foto_url" validate:"omitempty,url"`
}

// DraftFrom returns the draft that would recreate it.
func DraftFrom(it Item) Draft {
	return Draft{
		AdvertiserID: it.AdvertiserID,
		Name:         it.Name,
		DailyRate:    it.DailyRate,
		Category:     it.Category,
		Notes:        it.Notes,
		PhotoURL:     it.PhotoURL,
	}
}

func (d Draft) normalized() Draft {
	d.AdvertiserID = strings.TrimSpace(d.AdvertiserID)
	d.Name = strings.TrimSpace(d.Name)
	d.Category = strings.TrimSpace(d.Category)
	d.Notes = strings.TrimSpace(d.Notes)
	d.PhotoURL = strings.TrimSpace(d.PhotoURL)
	return d
}

func (d Draft) item(id string) Item {
	return Item{
		ID:           id,
		AdvertiserID: d.AdvertiserID,
		Name:         d.Name,
		DailyRate:    d.DailyRate,
		Category:     d.Category,
		Notes:        d.Notes,
		PhotoURL:     d.PhotoURL,
	}
}
