// Package apiclient is the gateway to the MWU finance API. It performs one
// JSON request per call, never retries, and reports failures through three
// error types: TransportError (the request never produced a response),
// HTTPError (the server answered with a non-2xx status) and DecodeError (a
// successful response carried a body that is not JSON). Entity endpoints are
// exposed as opaque Collections of Records.
package apiclient
