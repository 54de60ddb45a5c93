package items

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Casa e Jardim", CategoryLabel("casa_e_jardim"))
	assert.Equal(t, UndefinedCategoryLabel, CategoryLabel(""))
	assert.Equal(t, UndefinedCategoryLabel, CategoryLabel("carros"))
	assert.Len(t, Categories, 10)
	for _, c := range Categories {
		assert.True(t, ValidCategory(c.Value), c.Value)
	}
}

func TestIsAllCategories(t *testing.T) {
	assert.True(t, IsAllCategories(""))
	assert.True(t, IsAllCategories(CategoryAll))
	assert.False(t, IsAllCategories("outro"))
}

type stubRepo struct {
	Repository
	created []Draft
}

func (s *stubRepo) Create(_ context.Context, d Draft) (Item, error) {
	s.created = append(s.created, d)
	return d.item("i1"), nil
}

func TestCreateValidatesDraft(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), Draft{Name: "Furadeira", AdvertiserID: "p1", DailyRate: decimal.Zero, Category: "carros"})
	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be greater than 0", verr.Fields["preco_diario"])
	assert.Contains(t, verr.Fields["categoria"], "must be one of")
	assert.Empty(t, repo.created)

	it, err := svc.Create(context.Background(), Draft{Name: " Furadeira ", AdvertiserID: "p1", DailyRate: decimal.NewFromInt(15), Category: "ferramentas_e_equipamentos"})
	require.NoError(t, err)
	assert.Equal(t, "Furadeira", it.Name)
	assert.Equal(t, "Ferramentas e Equipamentos", it.CategoryLabel())
}
