// Package nps is a small client for the National Park Service data API.
//
// Only the read endpoints the tool server needs are covered. Responses can be
// cached by any Cache implementation; cache keys never include the API key.
package nps
