package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/router.txt
var routerRaw string

// Router returns the classification system prompt. The embed is compile-time,
// so this is safe to call concurrently.
func Router() string {
	return strings.TrimSpace(routerRaw)
}
