package fetch

import "strings"

// Key derives the cache key for url: the key prefix followed by the URL with
// the base URL stripped. URLs outside the base keep their full text, which
// cannot collide with a stripped key since those always start with "/".
func (c *Config) Key(url string) string {
	if c.BaseURL != "" && strings.HasPrefix(url, c.BaseURL+"/") {
		return c.KeyPrefix + strings.TrimPrefix(url, c.BaseURL)
	}

	return c.KeyPrefix + url
}
