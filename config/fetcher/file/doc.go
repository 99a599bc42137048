// Package file is the config.DataFetcher for configuration files.
//
// The file is read once when the Fetcher is constructed. ${VAR} and $VAR
// references are replaced with environment values at that point, so secrets
// and deployment-specific paths can stay out of the file:
//
//	cache:
//	  dsn: ${POKEDEX_CACHE_DSN}
//
// Unset variables expand to the empty string, which lets section defaults apply.
package file
