// Package session creates the opaque session identifier carried with every exchange.
//
// Exactly one Session exists per run of the client. The identifier is never
// interpreted by the client; it only lets the backend correlate requests.
package session
