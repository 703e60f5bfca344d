// Package http implements the HTTP transport of the document server.
//
// It wires the chi routes of the document API, the request handlers, and the
// middleware that runs before them: panic recovery, trace ids, access
// logging, gzip compression and the HMAC integrity check of document
// uploads. Handlers decode requests, delegate to the service layer and map
// service and store errors to HTTP statuses.
package http
