package providers

import (
	"fmt"
	"strings"
)

// BuildCacheKey namespaces fetch-cache keys by endpoint identity and date so
// different sources never collide.
func BuildCacheKey(elements ...string) string {
	return fmt.Sprintf("nhl-totals:fetch:%s", strings.Join(elements, ":"))
}
