package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rentbrasil/rentbrasil/internal/people"
	"github.com/rentbrasil/rentbrasil/internal/requests"
)

// RequestSort selects the request board order.
type RequestSort string

const (
	RequestSortName   RequestSort = "nome"
	RequestSortIntent RequestSort = "pretende_pagar"
)

// ParseRequestSort maps a query value to a RequestSort, defaulting to name.
func ParseRequestSort(value string) RequestSort {
	if RequestSort(strings.ToLower(strings.TrimSpace(value))) == RequestSortIntent {
		return RequestSortIntent
	}
	return RequestSortName
}

// RequestInput is the raw request board data.
type RequestInput struct {
	Requests []requests.Request
	People   []people.Person
}

// RequestQuery narrows and orders the request board.
type RequestQuery struct {
	CondominiumID string
	Text          string
	Sort          RequestSort
}

// RequestEntry is one request card with the requester's details.
type RequestEntry struct {
	requests.Request
	RequesterName string `json:"usuario_nome"`
	Apartment     string `json:"apartamento,omitempty"`
}

// FilterRequests keeps the requests whose requester lives in the selected
// condominium and whose item name contains the trimmed text. Requests
// without an intended rate sort last under RequestSortIntent.
func FilterRequests(in RequestInput, q RequestQuery) []RequestEntry {
	out := []RequestEntry{}
	if q.CondominiumID == "" {
		return out
	}

	requesters := people.Index(in.People)
	text := strings.ToLower(strings.TrimSpace(q.Text))

	for _, req := range in.Requests {
		requester, ok := requesters[req.RequesterID]
		if !ok || requester.CondominiumID != q.CondominiumID {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(req.ItemName), text) {
			continue
		}
		out = append(out, RequestEntry{Request: req, RequesterName: requester.Name, Apartment: requester.Apartment})
	}

	if q.Sort == RequestSortIntent {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].IntendedDailyRate, out[j].IntendedDailyRate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.LessThan(*b)
			}
		})
		return out
	}

	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].ItemName, out[j].ItemName) < 0
	})
	return out
}
