// Package httpchat implements chatc.Backend against an HTTP chat endpoint.
//
// Each call is a single POST of {"messages": [...], "sessionId": "..."} to the
// configured base URL plus chat path. Any 2xx response carrying a string "reply"
// field is a success; everything else is returned as an error for the caller to
// collapse into its own failure handling.
package httpchat
