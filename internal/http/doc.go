// Package http exposes tracker generation over HTTP.
//
// The router exposes the following endpoints:
//   - GET /healthz: liveness probe. Response: {"status":"ok"}.
//   - POST /trackers: multipart form upload. Fields: accounts (file, required),
//     contacts (file), template (file), trip_name, city, start_date, end_date,
//     meetings, owners (comma separated), seed, publish. Responds with the tracker
//     workbook as an attachment, or with {"data": publicationDTO} when publish=true.
//   - POST /trackers/preview: same form; responds with {"data": previewDTO} holding the
//     meetings, issues with suggested fixes, statistics, and run log without building
//     a workbook.
//
// Errors use the envelope {"error_code","message","errors","fix"}. Unreadable exports
// are 400 NOT_READABLE; exports missing required columns are 422 MISSING_COLUMNS; bad
// form values, trip ranges, and capacity overflows are 422; clients over the rate limit
// get 429 RATE_LIMITED. Every response carries an X-Request-ID header, and 500 messages
// quote it.
package http
