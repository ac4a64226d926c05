// Package community provides an HTTP client for the community pattern API.
//
// # Overview
//
// The client resolves favourite ids into full pattern records, submits star
// ratings and records visits when a pattern is loaded into the editor.
//
//	client, err := community.NewClient("https://regexr.com")
//	if err != nil {
//		return err
//	}
//	records, err := client.PatternList(ctx, []string{"12", "40"})
//
// # API Endpoints
//
//   - GET /api/patterns?ids=a,b: pattern records for the given ids
//   - POST /api/patterns/{id}/rating: body {"rating": n} with n in 0..5
//   - POST /api/patterns/{id}/visit: visit tracking, no body
//
// # Request Handling
//
// All requests use the caller's context, set Accept: application/json and a
// regexfav User-Agent, and time out after ten seconds. Errors are wrapped
// with the step that failed:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /api/patterns returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// # Records
//
// The API is loose about scalar types: ids and weightedVote may arrive as
// strings or numbers. Pattern normalizes both to strings and Vote parses the
// aggregate rating on demand, reporting ok=false when it is missing.
//
// The base address defaults to https://regexr.com; a value without a scheme
// is treated as plain http, which is convenient for a local test server.
package community
