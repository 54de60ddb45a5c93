package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rentbrasil/rentbrasil/internal/people"
	"github.com/rentbrasil/rentbrasil/internal/requests"
)

func rate(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func requestFixture() RequestInput {
	return RequestInput{
		People: []people.Person{
			{ID: "ana", Name: "Ana", CondominiumID: "c1", Apartment: "12"},
			{ID: "bia", Name: "Bia", CondominiumID: "c2"},
		},
		Requests: []requests.Request{
			{ID: "r1", RequesterID: "ana", ItemName: "Projetor"},
			{ID: "r2", RequesterID: "ana", ItemName: "Escada", IntendedDailyRate: rate(20)},
			{ID: "r3", RequesterID: "ana", ItemName: "Cadeira de praia", IntendedDailyRate: rate(5)},
			{ID: "r4", RequesterID: "bia", ItemName: "Escada"},
			{ID: "r5", RequesterID: "ghost", ItemName: "Escada"},
		},
	}
}

func requestIDs(entries []RequestEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestFilterRequestsNeedsCondominium(t *testing.T) {
	got := FilterRequests(requestFixture(), RequestQuery{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterRequestsByNameDefault(t *testing.T) {
	got := FilterRequests(requestFixture(), RequestQuery{CondominiumID: "c1"})
	assert.Equal(t, []string{"r3", "r2", "r1"}, requestIDs(got))
	assert.Equal(t, "Ana", got[0].RequesterName)
	assert.Equal(t, "12", got[0].Apartment)
}

func TestFilterRequestsByIntendedRateMissingLast(t *testing.T) {
	got := FilterRequests(requestFixture(), RequestQuery{CondominiumID: "c1", Sort: RequestSortIntent})
	assert.Equal(t, []string{"r3", "r2", "r1"}, requestIDs(got))

	in := requestFixture()
	in.Requests[2].IntendedDailyRate = nil
	got = FilterRequests(in, RequestQuery{CondominiumID: "c1", Sort: RequestSortIntent})
	assert.Equal(t, []string{"r2", "r1", "r3"}, requestIDs(got))
}

func TestFilterRequestsTrimsText(t *testing.T) {
	got := FilterRequests(requestFixture(), RequestQuery{CondominiumID: "c1", Text: "  ESC "})
	assert.Equal(t, []string{"r2"}, requestIDs(got))
	assert.Equal(t, RequestSortIntent, ParseRequestSort("pretende_pagar"))
	assert.Equal(t, RequestSortName, ParseRequestSort(""))
}
