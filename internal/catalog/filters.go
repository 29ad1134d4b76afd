// Copyright (c) 2024 Neomantra Corp

package catalog

import "strings"

// skipAsAggregate reports whether a vendor symbol ID is a synthetic
// aggregate channel that should never become an InstrumentDefinition.
// "OPTIONS" is kept for deribit, where it is a real per-date channel.
func skipAsAggregate(exchange, symbolID string) bool {
	if aggregateSymbols[symbolID] {
		return true
	}
	return symbolID == "OPTIONS" && exchange != "deribit"
}

// isLeveragedToken reports whether a symbol ID names a leveraged token
// ticker, excluded regardless of venue.
func isLeveragedToken(symbolID string) bool {
	for _, tok := range leveragedTokens {
		if strings.Contains(symbolID, tok) {
			return true
		}
	}
	return false
}

// quoteAllowed applies the per-venue quote-currency whitelist.
func quoteAllowed(exchange, quoteAsset string) bool {
	switch exchange {
	case "upbit":
		return quoteAsset == "KRW"
	case "deribit":
		return quoteAsset == "USD" || quoteAsset == "USDT" || quoteAsset == "USDC"
	default:
		return quoteAsset == "USDT"
	}
}

// intersectsRange reports whether [from, to] intersects [start, end],
// all inclusive, compared at day granularity as the source does.
func intersectsRange(from, to, start, end string) bool {
	return from <= end && to >= start
}
