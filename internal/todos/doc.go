// Package todos provides an HTTP client for a REST todo collection.
//
// # Overview
//
// The collection is a json-server style resource rooted at /todos. Each entry
// is an Item with an integer id, a title and a checked flag.
//
// # Endpoints
//
//   - GET /todos: full collection in store order
//   - GET /todos/{id}: one item (used by edit to merge before replacing)
//   - POST /todos: create; the id is omitted when the store assigns it
//   - PUT /todos/{id}: full replacement
//   - DELETE /todos/{id}: removal
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a docket/<version> User-Agent
//   - Carry a fresh X-Request-ID which is also written to the diagnostic log
//   - Have a 5-second timeout unless WithTimeout overrides it
//
// The list payload is checked against a JSON schema before decoding. A body
// that is not JSON, or that does not look like an array of todo objects,
// returns an error wrapping ErrMalformed.
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "api /todos returned status 500"
//   - "malformed response: /0/id: expected integer, but got string"
//
// # Id Assignment
//
// NextID implements the three IDStrategy values. IDStore is the default and
// leaves the id to the store. IDTail reproduces the historical "last item
// plus one" rule, which collides whenever the store returns the collection
// out of id order.
//
// # Thread Safety
//
// Client is safe for concurrent use.
//
// # Design Rationale
//
//   - No caching (the shell refetches after every mutation)
//   - No retries (the poller decides retry cadence)
//   - No authentication (the collection is assumed to be local)
package todos
