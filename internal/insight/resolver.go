package insight

import (
	"strings"

	"github.com/Alex-dot-c/crypto-track/pkg/market"
)

func normalizePrompt(prompt string) string {
	return strings.ToLower(strings.TrimSpace(prompt))
}

// Resolve returns the first asset, in list order, whose symbol or name equals
// the prompt ignoring case and surrounding whitespace. Duplicate symbols
// (wrapped or bridged tokens) resolve to whichever the upstream ranked first.
// Assets without an id are skipped since no chart can be fetched for them.
func Resolve(prompt string, assets market.AssetList) (market.Asset, bool) {
	want := normalizePrompt(prompt)
	if want == "" {
		return market.Asset{}, false
	}
	for _, a := range assets {
		if a.ID == "" {
			continue
		}
		if strings.ToLower(a.Symbol) == want || strings.ToLower(a.Name) == want {
			return a, true
		}
	}
	return market.Asset{}, false
}
