// Package reviews manages item reviews and rating aggregation.
package reviews

import "strings"

// Review is a 1-5 star rating left on an item, joined with the item name and
// the reviewer name.
type Review struct {
	ID           string `json:"id"`
	ReviewerID   string `json:"avaliador_id"`
	ReviewerName string `json:"avaliador_nome,omitempty"`
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_nome,omitempty"`
	Stars        int    `json:"estrelas"`
	Comment      string `json:"comentario,omitempty"`
}

// MaxCommentLength bounds review comments, in characters.
const MaxCommentLength = 200

// Draft is the editable part of a Review.
type Draft struct {
	ReviewerID string `json:"avaliador_id" validate:"required"`
	ItemID     string `json:"item_id" validate:"required"`
	Stars      int    `json:"estrelas" validate:"required,min=1,max=5"`
	Comment    string `json:"comentario" validate:"max=200"`
}

// DraftFrom returns the draft that would recreate r.
func DraftFrom(r Review) Draft {
	return Draft{ReviewerID: r.ReviewerID, ItemID: r.ItemID, Stars: r.Stars, Comment: r.Comment}
}

func (d Draft) normalized() Draft {
	d.ReviewerID = strings.TrimSpace(d.ReviewerID)
	d.ItemID = strings.TrimSpace(d.ItemID)
	d.Comment = strings.TrimSpace(d.Comment)
	return d
}
