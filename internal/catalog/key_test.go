// Copyright (c) 2024 Neomantra Corp

package catalog_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nimblemarkets/tickvault/internal/catalog"
)

var _ = Describe("Canonical instrument key", func() {
	Context("round trip", func() {
		It("round-trips a spot pair", func() {
			key := catalog.BuildCanonicalKey("binance", catalog.InstrumentType_SpotPair, "BTC", "USDT", "", "", catalog.OptionType_None)
			Expect(key).To(Equal("BINANCE:SPOT_PAIR:BTC-USDT"))

			parsed, err := catalog.ParseCanonicalKey(key)
			Expect(err).To(BeNil())
			Expect(parsed.Venue).To(Equal("BINANCE"))
			Expect(parsed.Type).To(Equal(catalog.InstrumentType_SpotPair))
			Expect(parsed.BaseAsset).To(Equal("BTC"))
			Expect(parsed.QuoteAsset).To(Equal("USDT"))
		})

		It("round-trips a perpetual", func() {
			key := catalog.BuildCanonicalKey("bybit", catalog.InstrumentType_Perp, "ETH", "USDT", "", "", catalog.OptionType_None)
			parsed, err := catalog.ParseCanonicalKey(key)
			Expect(err).To(BeNil())
			Expect(parsed.Type).To(Equal(catalog.InstrumentType_Perp))
			Expect(parsed.BaseAsset).To(Equal("ETH"))
		})

		It("round-trips a dated future", func() {
			key := catalog.BuildCanonicalKey("deribit", catalog.InstrumentType_Future, "BTC", "USD", "251226", "", catalog.OptionType_None)
			Expect(key).To(Equal("DERIBIT:FUTURE:BTC-USD-251226"))

			parsed, err := catalog.ParseCanonicalKey(key)
			Expect(err).To(BeNil())
			Expect(parsed.Expiry).To(Equal("251226"))
		})

		It("round-trips an option", func() {
			key := catalog.BuildCanonicalKey("deribit", catalog.InstrumentType_Option, "BTC", "USD", "251226", "70000", catalog.OptionType_Call)
			Expect(key).To(Equal("DERIBIT:OPTION:BTC-USD-251226-70000-CALL"))

			parsed, err := catalog.ParseCanonicalKey(key)
			Expect(err).To(BeNil())
			Expect(parsed.Strike).To(Equal("70000"))
			Expect(parsed.OptionType).To(Equal(catalog.OptionType_Call))
		})
	})

	Context("malformed input", func() {
		It("rejects a key with too few segments", func() {
			_, err := catalog.ParseCanonicalKey("BINANCE:SPOT_PAIR")
			Expect(err).To(MatchError(catalog.ErrInvalidCanonicalKey))
		})

		It("rejects an unknown type", func() {
			_, err := catalog.ParseCanonicalKey("BINANCE:BOGUS:BTC-USDT")
			Expect(err).To(HaveOccurred())
		})

		It("rejects a future missing its expiry segment", func() {
			_, err := catalog.ParseCanonicalKey("DERIBIT:FUTURE:BTC-USD")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("expiry conversion", func() {
		It("converts a settlement time to YYMMDD and back", func() {
			settlement := time.Date(2025, 12, 26, 8, 0, 0, 0, time.UTC)
			yymmdd := catalog.ExpiryToYYMMDD(settlement)
			Expect(yymmdd).To(Equal("251226"))

			t := catalog.BuildCanonicalKey("deribit", catalog.InstrumentType_Future, "BTC", "USD", yymmdd, "", catalog.OptionType_None)
			parsed, err := catalog.ParseCanonicalKey(t)
			Expect(err).To(BeNil())
			Expect(parsed.Expiry).To(Equal("251226"))
		})
	})
})
