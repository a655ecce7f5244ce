// Package auth resolves Jama Connect OAuth client credentials at server
// startup.
//
// Resolution precedence, first match wins:
//
//  1. JAMA_CLIENT_ID and JAMA_CLIENT_SECRET, when both are set and non-empty.
//     This route needs no external dependency and is preferred for local
//     development and tests.
//  2. An AWS SSM Parameter Store secret named by JAMA_AWS_SECRET_PATH,
//     fetched with decryption (optionally under the JAMA_AWS_PROFILE
//     shared-config profile). The secret must be a JSON object with
//     non-empty client_id and client_secret keys.
//
// If neither route is configured, resolution fails. All failures are typed
// (*auth.Error with a Kind) so the caller can distinguish a missing
// configuration from a misconfigured secrets backend. Failures are fatal at
// startup; the server never starts half-authenticated.
package auth
