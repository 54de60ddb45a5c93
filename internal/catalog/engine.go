// Package catalog builds the condominium scoped item catalog and request board.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rentbrasil/rentbrasil/internal/items"
	"github.com/rentbrasil/rentbrasil/internal/people"
	"github.com/rentbrasil/rentbrasil/internal/pricing"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
)

// SortKey selects the catalog order.
type SortKey string

const (
	SortName   SortKey = "nome"
	SortPrice  SortKey = "preco"
	SortRating SortKey = "avaliacao"
)

// DefaultSort is used when the query names no known order.
const DefaultSort = SortPrice

// ParseSortKey maps a query value to a SortKey, falling back to DefaultSort.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortName:
		return SortName
	case SortRating:
		return SortRating
	default:
		return DefaultSort
	}
}

// UnknownAdvertiser is shown when the advertiser cannot be found.
const UnknownAdvertiser = "N/A"

// Input is the raw catalog data.
type Input struct {
	Items   []items.Item
	People  []people.Person
	Reviews []reviews.Review
}

// Query narrows and orders the catalog. An empty CondominiumID yields an
// empty catalog.
type Query struct {
	CondominiumID string
	Text          string
	Category      string
	Sort          SortKey
}

// Entry is one catalog card.
type Entry struct {
	items.Item
	AdvertiserName string         `json:"anunciante_nome"`
	Average        float64        `json:"avaliacao_media"`
	Count          int            `json:"total_avaliacoes"`
	CategoryLabel  string         `json:"categoria_label"`
	Tiers          []pricing.Tier `json:"precos"`
}

// Engine filters and sorts catalog entries. The zero value is ready to use.
type Engine struct{}

// NewEngine returns an Engine.
func NewEngine() *Engine { return &Engine{} }

// Apply filters in.Items down to the query's condominium, text and category,
// then sorts them. It never returns nil.
func (e *Engine) Apply(in Input, q Query) []Entry {
	out := []Entry{}
	if q.CondominiumID == "" {
		return out
	}

	advertisers := people.Index(in.People)
	summaries := reviews.Summaries(in.Reviews)
	text := strings.ToLower(q.Text)

	for _, it := range in.Items {
		advertiser, ok := advertisers[it.AdvertiserID]
		if !ok || advertiser.CondominiumID != q.CondominiumID {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(it.Name), text) && !strings.Contains(strings.ToLower(it.Notes), text) {
			continue
		}
		if !items.IsAllCategories(q.Category) && it.Category != q.Category {
			continue
		}
		out = append(out, newEntry(it, advertiser.Name, summaries[it.ID]))
	}

	sortEntries(out, q.Sort)
	return out
}

// Detail builds the entry for a single item regardless of condominium.
func Detail(it items.Item, advertiser *people.Person, itemReviews []reviews.Review) Entry {
	name := ""
	if advertiser != nil {
		name = advertiser.Name
	}
	return newEntry(it, name, reviews.Summaries(itemReviews)[it.ID])
}

func newEntry(it items.Item, advertiserName string, summary reviews.Summary) Entry {
	if advertiserName == "" {
		advertiserName = UnknownAdvertiser
	}
	return Entry{
		Item:           it,
		AdvertiserName: advertiserName,
		Average:        summary.Average,
		Count:          summary.Count,
		CategoryLabel:  it.CategoryLabel(),
		Tiers:          pricing.Tiers(it.DailyRate),
	}
}

func sortEntries(list []Entry, key SortKey) {
	switch key {
	case SortName:
		col := collate.New(language.BrazilianPortuguese)
		sort.SliceStable(list, func(i, j int) bool {
			return col.CompareString(list[i].Name, list[j].Name) < 0
		})
	case SortRating:
		sort.SliceStable(list, func(i, j int) bool { return list[i].Average > list[j].Average })
	default:
		sort.SliceStable(list, func(i, j int) bool { return list[i].DailyRate.LessThan(list[j].DailyRate) })
	}
}
