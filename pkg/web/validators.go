package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"
)

// ParseOptionalDecimal extracts an optional fixed-point decimal from a query
// parameter. Returns nil when the parameter is absent, and false when it is
// present but not a valid decimal. The value is parsed textually, so the
// exact decimal representation is preserved.
func ParseOptionalDecimal(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string) (*decimal.Decimal, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return nil, false
	}
	return &d, true
}
