// Copyright (c) 2024 Neomantra Corp

package vendorapi

import (
	"context"

	"github.com/nimblemarkets/tickvault/internal/catalog"
)

// CatalogAdapter satisfies catalog.CatalogFetcher over a live Client,
// translating the wire ExchangeSymbol into the shape the parser consumes.
type CatalogAdapter struct {
	Client *Client
}

func (a CatalogAdapter) FetchCatalog(ctx context.Context, exchange string) ([]catalog.ExchangeSymbolSource, error) {
	symbols, err := a.Client.FetchCatalog(ctx, exchange)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.ExchangeSymbolSource, len(symbols))
	for i, s := range symbols {
		out[i] = catalog.ExchangeSymbolSource{
			ID:             s.ID,
			Type:           s.Type,
			AvailableSince: s.AvailableSince,
			AvailableTo:    s.AvailableTo,
		}
	}
	return out, nil
}
