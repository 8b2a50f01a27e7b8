package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
)

// ---- fake provider ----

// fakeProvider implements client.Provider for unit tests. Each FetchPage
// call pops the next queued response; an optional gate blocks the call
// until released, and started is closed once the first call has arrived.
type fakeProvider struct {
	pages [][]models.Product
	errs  []error
	calls int

	gate    chan struct{}
	started chan struct{}

	LastOffset int
	LastLimit  int
}

func (f *fakeProvider) FetchPage(ctx context.Context, offset, limit int) ([]models.Product, error) {
	f.LastOffset = offset
	f.LastLimit = limit
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.gate != nil {
		<-f.gate
	}
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.pages) {
		return f.pages[i], nil
	}
	return nil, nil
}

func (f *fakeProvider) Close() error { return nil }

func page(start, n int) []models.Product {
	items := make([]models.Product, n)
	for i := range items {
		items[i] = models.Product{ID: int64(start + i), Title: fmt.Sprintf("p%d", start+i)}
	}
	return items
}

// ---- TESTS ----

func TestFetch_FullPageThenShortPage(t *testing.T) {
	p := &fakeProvider{pages: [][]models.Product{page(0, 10), page(10, 4)}}
	s := NewProductService(p, 10, testLogger())
	ctx := context.Background()

	st, err := s.Fetch(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, st.Items, 10)
	assert.True(t, st.HasMore)
	assert.Equal(t, 10, st.Offset)
	assert.False(t, st.Loading)

	st, err = s.Fetch(ctx, 10, 10)
	require.NoError(t, err)
	assert.Len(t, st.Items, 14)
	assert.False(t, st.HasMore)
	assert.Equal(t, 20, st.Offset)

	// pages are appended in order
	assert.Equal(t, int64(0), st.Items[0].ID)
	assert.Equal(t, int64(13), st.Items[13].ID)
}

func TestFetch_OffsetZeroReplacesAccumulation(t *testing.T) {
	p := &fakeProvider{pages: [][]models.Product{page(0, 10), page(100, 3)}}
	s := NewProductService(p, 10, testLogger())
	ctx := context.Background()

	_, err := s.Fetch(ctx, 0, 10)
	require.NoError(t, err)

	st, err := s.Fetch(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, st.Items, 3)
	assert.Equal(t, int64(100), st.Items[0].ID)
}

func TestFetch_ErrorKeepsItemsAndClearsLoading(t *testing.T) {
	p := &fakeProvider{
		pages: [][]models.Product{page(0, 10), nil},
		errs:  []error{nil, errors.New("catalog offline")},
	}
	s := NewProductService(p, 10, testLogger())
	ctx := context.Background()

	_, err := s.Fetch(ctx, 0, 10)
	require.NoError(t, err)

	st, err := s.Fetch(ctx, 10, 10)
	require.Error(t, err)
	assert.Equal(t, "catalog offline", st.Err)
	assert.Len(t, st.Items, 10, "items unchanged on failure")
	assert.False(t, st.Loading)
}

func TestFetch_NextFetchClearsError(t *testing.T) {
	p := &fakeProvider{
		pages: [][]models.Product{nil, page(0, 2)},
		errs:  []error{errors.New("boom"), nil},
	}
	s := NewProductService(p, 10, testLogger())
	ctx := context.Background()

	_, err := s.Fetch(ctx, 0, 10)
	require.Error(t, err)

	st, err := s.Fetch(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, st.Err)
	assert.Len(t, st.Items, 2)
}

func TestLoadMore_AdvancesFromCursor(t *testing.T) {
	p := &fakeProvider{pages: [][]models.Product{page(0, 5), page(5, 5)}}
	s := NewProductService(p, 5, testLogger())
	ctx := context.Background()

	_, err := s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, p.LastOffset)
	assert.Equal(t, 5, p.LastLimit)

	st, err := s.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, p.LastOffset)
	assert.Len(t, st.Items, 10)
}

func TestReset_ReturnsToIdleEmptyState(t *testing.T) {
	p := &fakeProvider{pages: [][]models.Product{page(0, 10)}}
	s := NewProductService(p, 10, testLogger())
	ctx := context.Background()

	_, err := s.Fetch(ctx, 0, 10)
	require.NoError(t, err)

	s.Reset()

	st := s.State()
	assert.Empty(t, st.Items)
	assert.Equal(t, 0, st.Offset)
	assert.True(t, st.HasMore)
	assert.Empty(t, st.Err)
}

func TestFetch_StaleResultDiscardedAfterReset(t *testing.T) {
	p := &fakeProvider{
		pages:   [][]models.Product{page(0, 10)},
		gate:    make(chan struct{}),
		started: make(chan struct{}),
	}
	started := p.started
	s := NewProductService(p, 10, testLogger())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Fetch(ctx, 0, 10)
	}()

	// let the fetch reach the provider, then invalidate it
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("fetch never reached the provider")
	}
	s.Reset()
	close(p.gate)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fetch did not complete")
	}

	st := s.State()
	assert.Empty(t, st.Items, "superseded fetch must not repopulate the list")
	assert.Equal(t, 0, st.Offset)
}

func TestState_ReturnsDefensiveCopy(t *testing.T) {
	p := &fakeProvider{pages: [][]models.Product{page(0, 3)}}
	s := NewProductService(p, 3, testLogger())
	ctx := context.Background()

	_, err := s.Fetch(ctx, 0, 3)
	require.NoError(t, err)

	st := s.State()
	st.Items[0].Title = "mutated"

	again := s.State()
	assert.Equal(t, "p0", again.Items[0].Title)
}
