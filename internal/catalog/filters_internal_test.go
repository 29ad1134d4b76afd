// Copyright (c) 2024 Neomantra Corp

package catalog

import "testing"

func TestSkipAsAggregate(t *testing.T) {
	cases := []struct {
		exchange, symbolID string
		want               bool
	}{
		{"binance", "SPOT", true},
		{"binance", "FUTURES", true},
		{"binance", "OPTIONS", true},
		{"deribit", "OPTIONS", false},
		{"deribit", "BTC-29DEC23-50000-C", false},
		{"binance", "BTCUSDT", false},
	}
	for _, c := range cases {
		if got := skipAsAggregate(c.exchange, c.symbolID); got != c.want {
			t.Errorf("skipAsAggregate(%q, %q) = %v, want %v", c.exchange, c.symbolID, got, c.want)
		}
	}
}

func TestIsLeveragedToken(t *testing.T) {
	cases := []struct {
		symbolID string
		want     bool
	}{
		{"BTCUPUSDT", true},
		{"ETHDOWNUSDT", true},
		{"BTCUSDT", false},
		{"ADADOWNUSDT", true},
	}
	for _, c := range cases {
		if got := isLeveragedToken(c.symbolID); got != c.want {
			t.Errorf("isLeveragedToken(%q) = %v, want %v", c.symbolID, got, c.want)
		}
	}
}

func TestQuoteAllowed(t *testing.T) {
	cases := []struct {
		exchange, quote string
		want            bool
	}{
		{"upbit", "KRW", true},
		{"upbit", "USDT", false},
		{"deribit", "USD", true},
		{"deribit", "USDC", true},
		{"deribit", "KRW", false},
		{"binance", "USDT", true},
		{"binance", "USD", false},
	}
	for _, c := range cases {
		if got := quoteAllowed(c.exchange, c.quote); got != c.want {
			t.Errorf("quoteAllowed(%q, %q) = %v, want %v", c.exchange, c.quote, got, c.want)
		}
	}
}

func TestIntersectsRange(t *testing.T) {
	cases := []struct {
		from, to, start, end string
		want                 bool
	}{
		{"2024-01-01", "2024-01-31", "2024-01-15", "2024-02-15", true},
		{"2024-01-01", "2024-01-10", "2024-01-11", "2024-01-20", false},
		{"2024-01-01", "2024-12-31", "2024-06-01", "2024-06-02", true},
		{"2024-02-01", "2024-02-28", "2024-01-01", "2024-01-31", false},
	}
	for _, c := range cases {
		if got := intersectsRange(c.from, c.to, c.start, c.end); got != c.want {
			t.Errorf("intersectsRange(%q,%q,%q,%q) = %v, want %v", c.from, c.to, c.start, c.end, got, c.want)
		}
	}
}
