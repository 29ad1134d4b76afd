// Copyright (c) 2024 Neomantra Corp

package catalog

import "regexp"

// venueMapping maps vendor exchange codes to canonical VENUE strings.
var venueMapping = map[string]string{
	"binance":         "BINANCE",
	"binance-futures": "BINANCE-FUTURES",
	"deribit":         "DERIBIT",
	"bybit":           "BYBIT",
	"bybit-spot":      "BYBIT-SPOT",
	"okex":            "OKX",
	"okex-futures":    "OKX-FUTURES",
	"okex-swap":       "OKX-SWAP",
	"upbit":           "UPBIT",
}

// instrumentTypeMapping maps vendor symbol-type strings to InstrumentType.
// "combo" is Deribit-specific and maps to Option, but combo entries are
// filtered out before a key is ever generated for them.
var instrumentTypeMapping = map[string]InstrumentType{
	"spot":      InstrumentType_SpotPair,
	"perpetual": InstrumentType_Perp,
	"future":    InstrumentType_Future,
	"option":    InstrumentType_Option,
	"combo":     InstrumentType_Option,
}

// venuesWithSettlementShift is the asymmetric 8-hour availability-window
// shift described in spec's Open Question: applied only to these venues'
// future/option rows, never generalized to the others.
var venuesWithSettlementShift = map[string]bool{
	"deribit":         true,
	"binance-futures": true,
	"okex-futures":    true,
	"okex-swap":       true,
	"bybit":           true,
}

// dashSeparatedVenues split symbols on '-' for asset extraction; all other
// venues use suffix-stripping against quoteSuffixes.
var dashSeparatedVenues = map[string]bool{
	"deribit": true,
	"upbit":   true,
}

// quoteSuffixes is the longest-match quote-currency suffix table for
// suffix-stripping venues, ordered longest-first so e.g. "USDT" is
// preferred over "USD" for a symbol like "BTCUSDT".
var quoteSuffixes = []string{"USDT", "USDC", "BUSD", "TUSD", "DAI", "USD", "GBP", "EUR", "TRY", "BRL", "JPY", "KRW", "CNY", "HKD"}

// fiatPairsNoDigits are suffix-stripping-venue symbols that are nonetheless
// dash-separated BASE-QUOTE fiat pairs with no digits anywhere in them.
var fiatPairsNoDigits = map[string]bool{
	"USDT-TRY":  true,
	"USDT-EUR":  true,
	"USDT-BRL":  true,
	"USDC-EUR":  true,
	"USDT-USDC": true,
}

// leveragedTokens is the substring exclusion list for leveraged tickers.
var leveragedTokens = []string{"BTCUP", "BTCDOWN", "ETHUP", "ETHDOWN", "BNBUP", "BNBDOWN", "ADAUP", "ADADOWN"}

// aggregateSymbols are synthetic per-exchange aggregate channels, skipped
// except "OPTIONS" on deribit which is kept as a real per-date channel.
var aggregateSymbols = map[string]bool{
	"SPOT": true, "PERPETUALS": true, "FUTURES": true, "COMBOS": true,
}

// quarterlyMonthCodes resolves Bybit's quarterly-future month letter to a
// calendar month: F=Jan .. Z=Dec following the commodity futures convention.
var quarterlyMonthCodes = map[byte]int{
	'F': 1, 'G': 2, 'H': 3, 'J': 4, 'K': 5, 'M': 6,
	'N': 7, 'Q': 8, 'U': 9, 'V': 10, 'X': 11, 'Z': 12,
}

// monthAbbrevs resolves the three-letter DDMMMYY month abbreviation used by
// Deribit and Bybit expiry infixes/suffixes.
var monthAbbrevs = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// expiryPatternKind names which extractor in parse.go applies to a match
// from a venue's ordered regex table in venueExpiryPatterns.
type expiryPatternKind int

const (
	patternSingleDay expiryPatternKind = iota // -DMMMYY-  (single-digit day)
	patternAlt                                 // -DDMMMYY- infix
	patternFuture                             // -DDMMMYY$ suffix
	patternFutureYYMMDD                       // -YYMMDD$ suffix
	patternQuarterly                          // [A-Z]YY$  month-code + 2-digit year
	patternPlain                              // -YYMMDD- infix, or venue-specific terminal pattern
)

type expiryPattern struct {
	kind expiryPatternKind
	re   *regexp.Regexp
}

// venueExpiryPatterns is tried top-to-bottom per venue; the first match wins.
var venueExpiryPatterns = map[string][]expiryPattern{
	"deribit": {
		{patternSingleDay, regexp.MustCompile(`-(\d{1}[A-Z]{3}\d{2})-`)},
		{patternAlt, regexp.MustCompile(`-(\d{2}[A-Z]{3}\d{2})-`)},
		{patternFuture, regexp.MustCompile(`-(\d{2}[A-Z]{3}\d{2})$`)},
		{patternFutureYYMMDD, regexp.MustCompile(`-(\d{6})$`)},
		{patternPlain, regexp.MustCompile(`-(\d{6})-`)},
	},
	"binance-futures": {
		{patternPlain, regexp.MustCompile(`_(\d{6})$`)},
	},
	"bybit": {
		{patternAlt, regexp.MustCompile(`-(\d{2}[A-Z]{3}\d{2})-`)},
		{patternSingleDay, regexp.MustCompile(`-(\d{1}[A-Z]{3}\d{2})-`)},
		{patternQuarterly, regexp.MustCompile(`([A-Z])(\d{2})$`)},
		{patternPlain, regexp.MustCompile(`-(\d{2}[A-Z]{3}\d{2})$`)},
	},
	"okex-futures": {
		{patternPlain, regexp.MustCompile(`-(\d{6})$`)},
	},
	"okex-swap": {
		{patternPlain, regexp.MustCompile(`-(\d{6})$`)},
	},
}

var optionTypePattern = regexp.MustCompile(`-(C|P)$`)
var optionStrikePattern = regexp.MustCompile(`-(\d+d?\d*)-`)
