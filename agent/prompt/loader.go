package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/resolution.txt
	resolutionRaw string

	//go:embed template/order.txt
	orderRaw string
)

// PromptSet holds the static agent directives. Their content is opaque to
// the pipeline; the order directive is only ever extended, never edited.
type PromptSet struct {
	Resolution string
	Order      string
}

// LoadPromptSet returns the trimmed directives. Safe to call concurrently;
// the embed is compile-time.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Resolution: strings.TrimSpace(resolutionRaw),
		Order:      strings.TrimSpace(orderRaw),
	}
}
