// Package fetch retrieves upstream JSON documents in concurrent batches,
// reading through a cache.Store.
//
// FetchMany serves fresh cache entries without touching the network and
// dispatches everything else at once. Each URL succeeds or fails on its own:
// a failed request falls back to whatever the store still holds for that URL,
// stale or not, and is otherwise left out of the result and logged.
package fetch
