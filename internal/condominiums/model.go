// Package condominiums manages condominiums and the currently selected one.
package condominiums

import "strings"

// Condominium scopes catalog visibility.
type Condominium struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	Address  string `json:"endereco"`
	PhotoURL string `json:"foto_url"`
}

// Draft is the editable part of a Condominium.
type Draft struct {
	Name     string `json:"nome" validate:"required"`
	Address  string `json:"endereco" validate:"required"`
	PhotoURL string `json:"foto_url" validate:"required,url"`
}

// DraftFrom returns the draft that would recreate c.
func DraftFrom(c Condominium) Draft {
	return Draft{Name: c.Name, Address: c.Address, PhotoURL: c.PhotoURL}
}

func (d Draft) normalized() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
	d.PhotoURL = strings.TrimSpace(d.PhotoURL)
	return d
}
