// Package middleware holds the net/http middleware every listener wraps its
// handler in: panic recovery, request IDs, access logging, gzip compression
// and a processing deadline. Error responses are JSON objects with a single
// "message" key, the same shape the API handlers use.
package middleware
