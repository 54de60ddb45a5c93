package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/items"
	"github.com/rentbrasil/rentbrasil/internal/people"
	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
	"github.com/rentbrasil/rentbrasil/internal/requests"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
)

type fakeStore struct {
	in       Input
	reqs     RequestInput
	loads    atomic.Int32
	failWith error
	// hold, when set, runs inside every item load.
	hold func()
}

func (f *fakeStore) items() ItemSource { return itemSource{f} }
func (f *fakeStore) people() PersonSource { return personSource{f} }
func (f *fakeStore) reviews() ReviewSource { return reviewSource{f} }
func (f *fakeStore) requests() RequestSource { return requestSource{f} }

type itemSource struct{ f *fakeStore }

func (s itemSource) All(context.Context) ([]items.Item, error) {
	s.f.loads.Add(1)
	if s.f.hold != nil {
		s.f.hold()
	}
	if s.f.failWith != nil {
		return nil, s.f.failWith
	}
	return s.f.in.Items, nil
}

func (s itemSource) Get(_ context.Context, id string) (items.Item, error) {
	for _, it := range s.f.in.Items {
		if it.ID == id {
			return it, nil
		}
	}
	return items.Item{}, httpx.ErrNotFound
}

type personSource struct{ f *fakeStore }

func (s personSource) All(context.Context) ([]people.Person, error) { return s.f.in.People, nil }

func (s personSource) Get(_ context.Context, id string) (people.Person, error) {
	for _, p := range s.f.in.People {
		if p.ID == id {
			return p, nil
		}
	}
	return people.Person{}, httpx.ErrNotFound
}

type reviewSource struct{ f *fakeStore }

func (s reviewSource) All(context.Context) ([]reviews.Review, error) { return s.f.in.Reviews, nil }

func (s reviewSource) ForItem(_ context.Context, itemID string) ([]reviews.Review, error) {
	var out []reviews.Review
	for _, r := range s.f.in.Reviews {
		if r.ItemID == itemID {
			out = append(out, r)
		}
	}
	return out, nil
}

type requestSource struct{ f *fakeStore }

func (s requestSource) All(context.Context) ([]requests.Request, error) { return s.f.reqs.Requests, nil }

type fixedSelector string

func (s fixedSelector) Current() string { return string(s) }

func newTestService(t *testing.T, store *fakeStore, selector Selector) *Service {
	t.Helper()
	svc := NewService(Sources{
		Items:    store.items(),
		People:   store.people(),
		Reviews:  store.reviews(),
		Requests: store.requests(),
	}, selector, 0, nil)
	t.Cleanup(svc.Close)
	return svc
}

func TestServiceCachesSnapshotUntilInvalidated(t *testing.T) {
	store := &fakeStore{in: fixture()}
	svc := newTestService(t, store, nil)
	ctx := context.Background()

	_, err := svc.Catalog(ctx, Query{CondominiumID: "c1"})
	require.NoError(t, err)
	_, err = svc.Catalog(ctx, Query{CondominiumID: "c2"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), store.loads.Load())

	svc.Invalidate(ctx)
	_, err = svc.Catalog(ctx, Query{CondominiumID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), store.loads.Load())
}

func TestServiceDiscardsSnapshotLoadedAcrossInvalidate(t *testing.T) {
	store := &fakeStore{in: fixture()}
	svc := newTestService(t, store, nil)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store.hold = func() {
		once.Do(func() {
			close(started)
			<-release
		})
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Catalog(ctx, Query{CondominiumID: "c1"})
		done <- err
	}()

	<-started
	svc.Invalidate(ctx)
	close(release)
	require.NoError(t, <-done)

	_, err := svc.Catalog(ctx, Query{CondominiumID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), store.loads.Load(), "snapshot begun before the write must not be served")

	_, err = svc.Catalog(ctx, Query{CondominiumID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), store.loads.Load())
}

func TestServiceFallsBackToSelection(t *testing.T) {
	store := &fakeStore{in: fixture()}

	got, err := newTestService(t, store, nil).Catalog(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, store.loads.Load())

	got, err = newTestService(t, store, fixedSelector("c2")).Catalog(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"i4"}, ids(got))
}

func TestServiceNamesFailingSource(t *testing.T) {
	boom := errors.New("connection refused")
	store := &fakeStore{in: fixture(), failWith: boom}

	_, err := newTestService(t, store, nil).Catalog(context.Background(), Query{CondominiumID: "c1"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "catalog: load items")
}

func TestServiceRequestsAndItem(t *testing.T) {
	store := &fakeStore{in: fixture(), reqs: requestFixture()}
	store.in.People = append(store.in.People, requestFixture().People...)
	svc := newTestService(t, store, fixedSelector("c1"))
	ctx := context.Background()

	board, err := svc.Requests(ctx, RequestQuery{Sort: RequestSortIntent})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3", "r2", "r1"}, requestIDs(board))

	entry, err := svc.Item(ctx, "i2")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", entry.AdvertiserName)
	assert.Equal(t, 2, entry.Count)

	orphan, err := svc.Item(ctx, "i6")
	require.NoError(t, err)
	assert.Equal(t, UnknownAdvertiser, orphan.AdvertiserName)

	_, err = svc.Item(ctx, "missing")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestHandlerCatalogAndItem(t *testing.T) {
	store := &fakeStore{in: fixture()}
	r := chi.NewRouter()
	NewHandler(nil, newTestService(t, store, nil)).MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog?condominio_id=c1&ordenar=avaliacao&q=a", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "i2", entries[0]["id"])
	assert.Equal(t, "Bruno", entries[0]["anunciante_nome"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []items.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Len(t, cats, len(items.Categories))
}
