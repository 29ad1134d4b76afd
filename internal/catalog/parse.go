// Copyright (c) 2024 Neomantra Corp

package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseError is returned by parseSymbol for one vendor symbol that could
// not be turned into an InstrumentDefinition. It never aborts the batch;
// callers count it into CatalogWriteReport.ParseFailures.
type ParseError struct {
	Symbol string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("symbol %q: %s", e.Symbol, e.Reason)
}

// vendorSymbol is the subset of the vendor catalog response this package
// consumes, see internal/vendorapi for the wire type this is built from.
type vendorSymbol struct {
	ID            string
	Type          string // "spot", "perpetual", "future", "option", "combo"
	AvailableFrom time.Time
	AvailableTo   *time.Time // nil if the vendor omitted it
}

// assetPair holds the base/quote extracted from a vendor symbol ID.
type assetPair struct {
	base, quote string
}

// assetBearingPrefix strips a future/option symbol down to the substring
// that precedes its expiry/strike/option-type markers, so asset extraction
// never sees the derivative suffix. Spot/perp symbols have no such
// markers, so the prefix is the whole symbol, unchanged.
func assetBearingPrefix(exchange, symbolID string) string {
	cut := len(symbolID)
	for _, p := range venueExpiryPatterns[exchange] {
		if loc := p.re.FindStringSubmatchIndex(symbolID); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	if loc := optionStrikePattern.FindStringIndex(symbolID); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	if loc := optionTypePattern.FindStringIndex(symbolID); loc != nil && loc[0] < cut {
		cut = loc[0]
	}
	return strings.TrimSuffix(symbolID[:cut], "-")
}

// extractAssets implements the two asset-extraction policies of §4.1:
// dash-separated venues split on '-'; suffix-stripping venues match the
// longest known quote suffix, with a fiat-pair special case. Callers pass
// the asset-bearing prefix (see assetBearingPrefix) for futures/options,
// so no expiry/strike/option-type marker ever reaches this function.
func extractAssets(exchange, symbolID string) (assetPair, error) {
	if dashSeparatedVenues[exchange] {
		parts := strings.SplitN(symbolID, "-", 2)
		if len(parts) == 1 {
			// No explicit quote in the symbol (e.g. a coin-margined
			// derivative's stripped prefix, or "PERPETUAL" marker
			// already removed): default to USD per §4.1.
			return assetPair{base: parts[0], quote: "USD"}, nil
		}
		quote := parts[1]
		if quote == "" || quote == "PERPETUAL" {
			quote = "USD"
		}
		return assetPair{base: parts[0], quote: quote}, nil
	}

	if strings.Contains(symbolID, "-") && !hasDigit(symbolID) {
		parts := strings.SplitN(symbolID, "-", 2)
		return assetPair{base: parts[0], quote: parts[1]}, nil
	}

	for _, suffix := range quoteSuffixes {
		if strings.HasSuffix(symbolID, suffix) && len(symbolID) > len(suffix) {
			base := strings.TrimSuffix(strings.TrimSuffix(symbolID, suffix), "-")
			return assetPair{base: base, quote: suffix}, nil
		}
	}
	return assetPair{}, fmt.Errorf("no known quote suffix in %q", symbolID)
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// derivativeAttrs holds the expiry/strike/option-type extracted from a
// future or option symbol's name.
type derivativeAttrs struct {
	expiry     time.Time
	hasExpiry  bool
	strike     string
	optionType OptionType
}

// extractDerivativeAttrs runs the per-venue pattern table in order until one
// matches, following the precedence named in §4.1.
func extractDerivativeAttrs(exchange, symbolID string) (derivativeAttrs, error) {
	patterns := venueExpiryPatterns[exchange]
	var out derivativeAttrs

	for _, p := range patterns {
		m := p.re.FindStringSubmatch(symbolID)
		if m == nil {
			continue
		}
		expiry, err := resolveExpiryMatch(p.kind, m)
		if err != nil {
			return derivativeAttrs{}, err
		}
		out.expiry = expiry
		out.hasExpiry = true
		break
	}
	if !out.hasExpiry {
		return out, fmt.Errorf("no expiry pattern matched %q", symbolID)
	}

	if m := optionTypePattern.FindStringSubmatch(symbolID); m != nil {
		switch m[1] {
		case "C":
			out.optionType = OptionType_Call
		case "P":
			out.optionType = OptionType_Put
		}
	}
	if m := optionStrikePattern.FindStringSubmatch(symbolID); m != nil {
		out.strike = strings.Replace(m[1], "d", ".", 1)
	}
	return out, nil
}

// resolveExpiryMatch turns one regex match into a settlement time at
// 08:00:00Z, per pattern kind.
func resolveExpiryMatch(kind expiryPatternKind, m []string) (time.Time, error) {
	switch kind {
	case patternSingleDay, patternAlt, patternFuture:
		// m[1] is D|DD + MMM + YY, e.g. "7NOV25" or "29DEC23".
		return parseDDMMMYY(m[1])
	case patternFutureYYMMDD, patternPlain:
		if len(m[1]) == 6 && allDigits(m[1]) {
			return expiryFromYYMMDD(m[1])
		}
		return parseDDMMMYY(m[1])
	case patternQuarterly:
		// m[1] is the month-code letter, m[2] the two-digit year.
		month, ok := quarterlyMonthCodes[m[1][0]]
		if !ok {
			return time.Time{}, fmt.Errorf("unknown quarterly month code %q", m[1])
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, err
		}
		return lastDayOfMonth(2000+year, month), nil
	}
	return time.Time{}, fmt.Errorf("unhandled pattern kind %d", kind)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseDDMMMYY parses a D/DDMMMYY string like "7NOV25" or "29DEC23" into a
// settlement time at 08:00:00Z.
var ddmmmyyRe = regexp.MustCompile(`^(\d{1,2})([A-Z]{3})(\d{2})$`)

func parseDDMMMYY(s string) (time.Time, error) {
	m := ddmmmyyRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%q is not DMMMYY", s)
	}
	day, _ := strconv.Atoi(m[1])
	month, ok := monthAbbrevs[m[2]]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month abbreviation %q", m[2])
	}
	year, _ := strconv.Atoi(m[3])
	return time.Date(2000+year, time.Month(month), day, 8, 0, 0, 0, time.UTC), nil
}

// lastDayOfMonth returns 08:00:00Z on the last calendar day of (year, month).
func lastDayOfMonth(year, month int) time.Time {
	firstOfNext := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	last := firstOfNext.Add(-24 * time.Hour)
	return time.Date(last.Year(), last.Month(), last.Day(), 8, 0, 0, 0, time.UTC)
}

// parseSymbol runs the full pipeline for one vendor symbol: type
// classification, asset extraction, derivative attribute extraction,
// availability-window derivation (with the settlement shift), and product
// list assignment. It returns (nil, nil) for the deribit-combo silent-skip
// case, which the caller must not count as a parse failure.
func parseSymbol(exchange string, sym vendorSymbol) (*InstrumentDefinition, error) {
	venue, ok := venueMapping[exchange]
	if !ok {
		return nil, &ParseError{Symbol: sym.ID, Reason: fmt.Sprintf("unknown exchange %q", exchange)}
	}
	instType, ok := instrumentTypeMapping[sym.Type]
	if !ok {
		return nil, &ParseError{Symbol: sym.ID, Reason: fmt.Sprintf("unknown symbol type %q", sym.Type)}
	}

	isCombo := sym.Type == "combo"

	assetSymbol := sym.ID
	if instType == InstrumentType_Future || instType == InstrumentType_Option {
		assetSymbol = assetBearingPrefix(exchange, sym.ID)
	}
	assets, err := extractAssets(exchange, assetSymbol)
	if err != nil {
		if isCombo {
			return nil, nil
		}
		return nil, &ParseError{Symbol: sym.ID, Reason: err.Error()}
	}

	availableFrom := sym.AvailableFrom.UTC()
	var availableTo time.Time
	switch {
	case sym.AvailableTo != nil:
		availableTo = sym.AvailableTo.UTC()
	case instType == InstrumentType_SpotPair || instType == InstrumentType_Perp:
		availableTo = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)
	default:
		derived, derr := extractDerivativeAttrs(exchange, sym.ID)
		if derr != nil {
			if isCombo {
				return nil, nil
			}
			return nil, &ParseError{Symbol: sym.ID, Reason: "missing expiry date: " + derr.Error()}
		}
		availableTo = derived.expiry
	}

	if venuesWithSettlementShift[exchange] && (sym.Type == "future" || sym.Type == "option") {
		if availableFrom.Hour() == 0 {
			availableFrom = availableFrom.Add(8 * time.Hour)
		}
		if availableTo.Hour() == 0 {
			availableTo = availableTo.Add(-16 * time.Hour)
		}
	}

	baseAsset := strings.ToUpper(assets.base)
	quoteAsset := strings.ToUpper(assets.quote)
	// Coin-margined ("inverse") contracts are quoted in USD but settle in
	// the base asset, e.g. Deribit's BTC-quoted-in-USD futures/options.
	settleAsset := quoteAsset
	if quoteAsset == "USD" {
		settleAsset = baseAsset
	}

	def := &InstrumentDefinition{
		Venue:             venue,
		InstrumentType:    instType,
		AvailableFrom:     availableFrom,
		AvailableTo:       availableTo,
		DataTypes:         ProductsForType(instType),
		BaseAsset:         baseAsset,
		QuoteAsset:        quoteAsset,
		SettleAsset:       settleAsset,
		ExchangeRawSymbol: sym.ID,
		VendorSymbol:      sym.ID,
		VendorExchange:    exchange,
	}

	if instType == InstrumentType_Future || instType == InstrumentType_Option {
		derived, derr := extractDerivativeAttrs(exchange, sym.ID)
		if derr != nil {
			if isCombo {
				return nil, nil
			}
			return nil, &ParseError{Symbol: sym.ID, Reason: "missing expiry date: " + derr.Error()}
		}
		expiry := availableTo // the filter re-derives the canonical expiry from available_to, matching the vendor's own post-shift value
		def.Expiry = &expiry
		def.Underlying = def.BaseAsset + "-" + def.QuoteAsset
		if instType == InstrumentType_Option {
			if derived.strike == "" || derived.optionType == OptionType_None {
				if isCombo {
					return nil, nil
				}
				return nil, &ParseError{Symbol: sym.ID, Reason: "missing option strike or type"}
			}
			def.Strike = derived.strike
			def.OptionType = derived.optionType
		}
	}

	def.InstrumentKey = buildKeyForDefinition(def)
	def.Inverse = def.SettleAsset != def.QuoteAsset
	return def, nil
}

func buildKeyForDefinition(d *InstrumentDefinition) string {
	expiryStr := ""
	if d.Expiry != nil {
		expiryStr = ExpiryToYYMMDD(*d.Expiry)
	}
	return BuildCanonicalKey(d.Venue, d.InstrumentType, d.BaseAsset, d.QuoteAsset, expiryStr, d.Strike, d.OptionType)
}
