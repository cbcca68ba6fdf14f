// Package gatesdk provides the request/response types and an HTTP client for
// the gatekeep service. The server handlers and the SDK share these types so
// the wire contract lives in exactly one place.
//
// Two audiences use it: tracking agents, which only call Resolve, and admin
// tooling, which manages clients and domain authorizations with a bearer
// token.
package gatesdk
