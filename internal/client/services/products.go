package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/shopcore/internal/client/client"
	"github.com/dmitrijs2005/shopcore/internal/client/models"
	"github.com/dmitrijs2005/shopcore/internal/logging"
)

const defaultPageLimit = 10

// PageState is the accumulated view of the remote product list: the merged
// items, the next-page cursor, and the loading/error flags the UI renders.
type PageState struct {
	Items   []models.Product
	Offset  int
	Limit   int
	HasMore bool
	Loading bool
	Err     string
}

// ProductService drives the remote paged product list and merges pages into
// one ordered collection.
//
// Every fetch is tagged with a generation; a Reset or a newer fetch bumps
// the generation, and completions carrying a stale one are discarded. That
// keeps overlapping fetches from corrupting the cursor or the item order:
// the newest request wins.
type ProductService struct {
	provider client.Provider
	log      logging.Logger

	mu    sync.Mutex
	gen   uint64
	state PageState
}

// NewProductService constructs a controller over the given provider.
// A non-positive limit falls back to the default page size.
func NewProductService(provider client.Provider, limit int, log logging.Logger) *ProductService {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return &ProductService{
		provider: provider,
		log:      log.With("component", "products"),
		state:    PageState{Limit: limit, HasMore: true},
	}
}

// State returns a snapshot of the current page state. The items slice is
// copied so callers can hold it across later fetches.
func (s *ProductService) State() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Fetch loads the window [offset, offset+limit) from the provider, once.
//
// On success, a page at offset 0 replaces the accumulated items and any
// other offset appends after them; hasMore becomes true exactly when the
// page came back full, and the cursor advances by limit regardless of the
// returned count. On failure the error message is recorded and the items
// are left untouched.
//
// The returned snapshot reflects the state after this fetch was applied,
// or the current state if the result was discarded as stale.
func (s *ProductService) Fetch(ctx context.Context, offset, limit int) (PageState, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	items, err := s.provider.FetchPage(ctx, offset, limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// a Reset or a newer Fetch superseded this request
		s.log.Debug(ctx, "discarding stale fetch result", "offset", offset)
		return s.snapshot(), nil
	}

	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		return s.snapshot(), err
	}

	if offset == 0 {
		s.state.Items = append([]models.Product(nil), items...)
	} else {
		s.state.Items = append(s.state.Items, items...)
	}
	s.state.Offset = offset + limit
	s.state.HasMore = len(items) == limit
	return s.snapshot(), nil
}

// LoadMore fetches the next window at the current cursor.
func (s *ProductService) LoadMore(ctx context.Context) (PageState, error) {
	s.mu.Lock()
	offset, limit := s.state.Offset, s.state.Limit
	s.mu.Unlock()
	return s.Fetch(ctx, offset, limit)
}

// Reset empties the accumulation and rewinds the cursor, invalidating any
// in-flight fetch. Used after logout so the next session does not see the
// previous session's cached list.
func (s *ProductService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = PageState{Limit: s.state.Limit, HasMore: true}
}

func (s *ProductService) snapshot() PageState {
	st := s.state
	st.Items = append([]models.Product(nil), s.state.Items...)
	return st
}
