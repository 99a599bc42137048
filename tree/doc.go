// Package tree walks and rewrites decoded JSON documents.
//
// A document is whatever encoding/json produces when decoding into an any:
// map[string]any for objects, []any for arrays, and string, float64, bool or
// nil for leaves.
//
// # Path Specs
//
// Extract follows a dot-separated path spec through a document. Each segment
// is either a literal key or the wildcard "*", which visits every element of
// the array or object at that point:
//
//	"species.url"                  -> {"species": {"url": "..."}}
//	"abilities.*.ability.url"      -> every ability url
//	"forms.*"                      -> every string in the forms array
//
// Literal segments also index arrays ("moves.0.move.url"). There is no escape
// syntax, so keys containing "." or "*" cannot be addressed.
//
// # Container Paths
//
// Matches are reported by container path: the path of the object that holds
// the matched string, without the key that named it. Merge writes a value back
// into the document at a container path, next to the keys already there:
//
//	found := tree.Extract(doc, "species.url") // {"species": "https://..."}
//	doc, err := tree.Merge(doc, map[string]any{"species": fetched}, tree.DefaultField)
package tree
