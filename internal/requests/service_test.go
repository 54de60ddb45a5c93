package requests

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

type stubRepo struct {
	Repository
	saved []Draft
}

func (s *stubRepo) Create(_ context.Context, d Draft) (Request, error) {
	s.saved = append(s.saved, d)
	return d.request("r1"), nil
}

func TestCreateRequiresItemNameAndRequester(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)
	_, err := svc.Create(context.Background(), Draft{})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "nome_item")
	assert.Contains(t, verr.Fields, "usuario_id")
}

func TestCreateRejectsNegativeIntendedRate(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)
	neg := decimal.NewFromInt(-1)

	_, err := svc.Create(context.Background(), Draft{RequesterID: "p1", ItemName: "Barraca", IntendedDailyRate: &neg})
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at least 0", verr.Fields["pretende_pagar_diario"])
	assert.Empty(t, repo.saved)

	zero := decimal.Zero
	req, err := svc.Create(context.Background(), Draft{RequesterID: "p1", ItemName: " Barraca ", IntendedDailyRate: &zero})
	require.NoError(t, err)
	assert.Equal(t, "Barraca", req.ItemName)
}
