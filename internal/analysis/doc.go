// Package analysis is the HTTP contract between logscope and the remote log
// analysis service.
//
// # Request
//
// Every attempt is a single POST with a JSON body:
//
//	{"logContent": "<first 50 lines of the buffer>"}
//
// The 50-line cap is enforced here (TruncateLines, NewRequest) and never assumed of
// the server. Requests carry Content-Type and Accept: application/json, a
// logscope User-Agent and an X-Request-ID that also appears in the client log.
//
// # Classification
//
// A response is successful iff its status is 2xx and its body parses as JSON.
// explanation and suggestion are read as strings when present; a missing
// explanation is returned as an empty string and a missing or empty suggestion as
// nil.
//
// Everything else fails:
//
//   - *TransportError: the request never produced a readable response
//     (connection refused, DNS failure, timeout, cancelled context, truncated body)
//   - *ServiceError: error status, or a 2xx body that is not JSON
//
// The ServiceError message is taken from the body's "message" string when present,
// else the whole JSON body re-serialized, else the raw body text, else
// GenericFailureMessage.
//
// Classify folds (Diagnosis, error) into the Outcome variant consumed by the
// session package.
//
// # Testing
//
// Analyzer is the seam for tests and alternative transports; *Client implements it.
package analysis
