// Copyright (c) 2024 Neomantra Corp

package download

import (
	"errors"

	"github.com/nimblemarkets/tickvault/internal/vendorapi"
)

// FailureCategory classifies why one target's fetch did not produce a
// file, per §4.2.4/§7's taxonomy. The HTTP-level retry/backoff policy
// itself lives in vendorapi.NewClient; this classifies the terminal
// outcome for DownloadReport.PerTargetStatus.
type FailureCategory string

const (
	CategoryNone       FailureCategory = ""          // succeeded
	CategoryNotFound   FailureCategory = "not_found"  // 404: no data, not an error
	CategoryRetryExhausted FailureCategory = "retry_exhausted"
	CategoryDecodeError    FailureCategory = "decode_error"
	CategoryUploadError    FailureCategory = "upload_error"
)

// Classify maps a fetch error into its reporting category.
func Classify(err error) FailureCategory {
	if err == nil {
		return CategoryNone
	}
	if errors.Is(err, vendorapi.ErrNotFound) {
		return CategoryNotFound
	}
	return CategoryRetryExhausted
}
