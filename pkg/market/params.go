package market

import (
	"strconv"
	"strings"

	"github.com/Alex-dot-c/crypto-track/pkg/apperr"
)

var idAliases = map[string]string{
	"btc": "bitcoin",
	"eth": "ethereum",
	"xrp": "ripple",
}

// CanonicalID maps a few well-known tickers to their CoinGecko ids. Anything
// else is passed through unchanged.
func CanonicalID(id string) string {
	if mapped, ok := idAliases[strings.ToLower(id)]; ok {
		return mapped
	}
	return id
}

// ParseDays validates the days query parameter. An empty value means the
// default window.
func ParseDays(raw string) (int, error) {
	if raw == "" {
		return DefaultDays, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || days < 1 {
		return 0, apperr.Validation("Invalid 'days' parameter")
	}
	return days, nil
}
