// Package jama provides clients for the Jama Connect REST API.
//
// Two implementations of the Client interface exist:
//
//   - RESTClient talks to a real Jama Connect instance over REST v1,
//     authenticating with an OAuth client-credential exchange. Construction
//     is purely local; the first network round-trip happens on the first
//     API call, not at startup.
//   - MockClient returns fixed canned data for a small set of well-known
//     IDs and empty results for everything else, allowing the server and
//     its test suite to run without a Jama instance.
//
// All operations return plain maps and slices mirroring the Jama JSON
// payloads; this package deliberately does not model the Jama domain with
// typed structs.
package jama
