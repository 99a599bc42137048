// Package yaml is the config.Parser for YAML documents, built on goccy/go-yaml.
//
// Colon-separated section paths become YAML paths ("upstream" -> "$.upstream",
// "a:b" -> "$.a.b"). Durations such as "10s" decode into time.Duration fields.
// With Strict, keys that do not map to a struct field are rejected.
package yaml
