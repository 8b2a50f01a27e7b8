package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopcore/internal/client/services"
)

// Products loads the first page of the catalog, replacing anything
// accumulated so far.
func (a *App) Products(ctx context.Context) error {
	st, err := a.products.Fetch(ctx, 0, a.config.PageLimit)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	printPage(st)
	return nil
}

// More loads the next page at the current cursor.
func (a *App) More(ctx context.Context) error {
	before := a.products.State()
	if !before.HasMore {
		fmt.Println("End of catalog.")
		return nil
	}

	st, err := a.products.LoadMore(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	printPage(st)
	return nil
}

// Reset drops the accumulated catalog and rewinds to the first page.
func (a *App) Reset(ctx context.Context) error {
	a.products.Reset()
	fmt.Println("Catalog reset.")
	return nil
}

func printPage(st services.PageState) {
	for _, p := range st.Items {
		fmt.Printf("%6d  %-40s %10.2f\n", p.ID, p.Title, p.Price)
	}
	if st.HasMore {
		fmt.Printf("%d items loaded, type 'more' for the next page\n", len(st.Items))
	} else {
		fmt.Printf("%d items loaded, end of catalog\n", len(st.Items))
	}
}
