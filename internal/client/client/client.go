// Package client talks to the remote catalog backend. The backend is an
// opaque paged-list provider: it serves product windows by offset/limit and
// gives no total count, so the end of the list is inferred from a short page.
package client

import (
	"context"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
)

type Provider interface {
	// FetchPage fetches the window [offset, offset+limit) of the product
	// list. A single attempt is made; retry policy belongs to the caller.
	FetchPage(ctx context.Context, offset, limit int) ([]models.Product, error)
	Close() error
}
