// Package people manages residents: advertisers, tenants, reviewers and requesters.
package people

import "strings"

// Person is a resident. CondominiumID is empty when the person has no condominium.
type Person struct {
	ID            string `json:"id"`
	Name          string `json:"nome_pessoa"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"telefone"`
	CondominiumID string `json:"condominio_id,omitempty"`
	Apartment     string `json:"apartamento"`
}

// Draft is the editable part of a Person.
type Draft struct {
	Name          string `json:"nome_pessoa" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"telefone" validate:"required"`
	CondominiumID string `json:"condominio_id"`
	Apartment     string `json:"apartamento" validate:"required"`
}

// DraftFrom returns the draft that would recreate p.
func DraftFrom(p Person) Draft {
	return Draft{
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		CondominiumID: p.CondominiumID,
		Apartment:     p.Apartment,
	}
}

func (d Draft) normalized() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.CondominiumID = strings.TrimSpace(d.CondominiumID)
	d.Apartment = strings.TrimSpace(d.Apartment)
	return d
}

// Index maps people by ID.
func Index(list []Person) map[string]Person {
	out := make(map[string]Person, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out
}
