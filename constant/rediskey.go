package constant

import "fmt"

const (
	BasePrefix = "redirectflow:"

	// SlugKey caches the resolve payload for one slug
	// (redirectflow:slug:<slug>).
	SlugKey = BasePrefix + "slug:%s"
)

// GetSlugKey builds the cache key for a slug lookup.
func GetSlugKey(slug string) string {
	return fmt.Sprintf(SlugKey, slug)
}
