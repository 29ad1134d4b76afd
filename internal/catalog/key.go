// Copyright (c) 2024 Neomantra Corp

package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidCanonicalKey is returned by ParseCanonicalKey for malformed input.
var ErrInvalidCanonicalKey = fmt.Errorf("invalid canonical instrument key")

// ParsedKey is the decomposition of a canonical instrument key, as produced
// by ParseCanonicalKey. It must round-trip: re-parsing an InstrumentKey
// reproduces the same Venue, Type and asset triple the generator derived.
type ParsedKey struct {
	Venue      string
	Type       InstrumentType
	BaseAsset  string
	QuoteAsset string
	Expiry     string // YYMMDD, empty unless Type is Future/Option
	Strike     string // empty unless Type is Option
	OptionType OptionType
}

// BuildCanonicalKey renders the VENUE:TYPE:SYMBOL[-EXPIRY[-STRIKE-OPTION_TYPE]]
// form described by the canonical key invariants: uppercase, '-' as the only
// separator within SYMBOL.
func BuildCanonicalKey(venue string, t InstrumentType, base, quote, expiryYYMMDD, strike string, opt OptionType) string {
	venue = strings.ToUpper(venue)
	symbol := strings.ToUpper(base) + "-" + strings.ToUpper(quote)
	switch t {
	case InstrumentType_Future:
		symbol += "-" + expiryYYMMDD
	case InstrumentType_Option:
		symbol += "-" + expiryYYMMDD + "-" + strike + "-" + opt.String()
	}
	return fmt.Sprintf("%s:%s:%s", venue, t.String(), symbol)
}

// ParseCanonicalKey decomposes a canonical instrument key back into its
// venue, type, and asset components.
func ParseCanonicalKey(key string) (ParsedKey, error) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return ParsedKey{}, ErrInvalidCanonicalKey
	}
	venue, typeStr, symbol := parts[0], parts[1], parts[2]

	var instType InstrumentType
	switch typeStr {
	case "SPOT_PAIR":
		instType = InstrumentType_SpotPair
	case "PERP":
		instType = InstrumentType_Perp
	case "FUTURE":
		instType = InstrumentType_Future
	case "OPTION":
		instType = InstrumentType_Option
	default:
		return ParsedKey{}, fmt.Errorf("%w: unknown type %q", ErrInvalidCanonicalKey, typeStr)
	}

	segs := strings.Split(symbol, "-")
	out := ParsedKey{Venue: venue, Type: instType}

	switch instType {
	case InstrumentType_SpotPair, InstrumentType_Perp:
		if len(segs) != 2 {
			return ParsedKey{}, fmt.Errorf("%w: expected BASE-QUOTE, got %q", ErrInvalidCanonicalKey, symbol)
		}
		out.BaseAsset, out.QuoteAsset = segs[0], segs[1]
	case InstrumentType_Future:
		if len(segs) != 3 {
			return ParsedKey{}, fmt.Errorf("%w: expected BASE-QUOTE-EXPIRY, got %q", ErrInvalidCanonicalKey, symbol)
		}
		out.BaseAsset, out.QuoteAsset, out.Expiry = segs[0], segs[1], segs[2]
	case InstrumentType_Option:
		if len(segs) != 5 {
			return ParsedKey{}, fmt.Errorf("%w: expected BASE-QUOTE-EXPIRY-STRIKE-TYPE, got %q", ErrInvalidCanonicalKey, symbol)
		}
		out.BaseAsset, out.QuoteAsset, out.Expiry, out.Strike = segs[0], segs[1], segs[2], segs[3]
		switch segs[4] {
		case "CALL":
			out.OptionType = OptionType_Call
		case "PUT":
			out.OptionType = OptionType_Put
		default:
			return ParsedKey{}, fmt.Errorf("%w: unknown option type %q", ErrInvalidCanonicalKey, segs[4])
		}
	}
	return out, nil
}

// ExpiryToYYMMDD normalizes a settlement time (already forced to 08:00:00Z
// per the canonical key invariant) to the key's YYMMDD component.
func ExpiryToYYMMDD(t time.Time) string {
	return t.UTC().Format("060102")
}

// expiryFromYYMMDD is the inverse of ExpiryToYYMMDD, returning the settlement
// instant at 08:00:00Z. Two-digit years are resolved into the 2000s, which
// is sufficient for this system's entire operating horizon.
func expiryFromYYMMDD(yymmdd string) (time.Time, error) {
	if len(yymmdd) != 6 {
		return time.Time{}, fmt.Errorf("expiry %q is not YYMMDD", yymmdd)
	}
	yy, err := strconv.Atoi(yymmdd[0:2])
	if err != nil {
		return time.Time{}, err
	}
	mm, err := strconv.Atoi(yymmdd[2:4])
	if err != nil {
		return time.Time{}, err
	}
	dd, err := strconv.Atoi(yymmdd[4:6])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(2000+yy, time.Month(mm), dd, 8, 0, 0, 0, time.UTC), nil
}
