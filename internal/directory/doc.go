// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package directory is the HTTP client for the upstream talent directory.

Every profile and candidate in the system originates here: the search
endpoint yields lightweight Candidate stubs, the genome endpoint yields
full skill profiles, and the ping endpoint backs the readiness probe.
The rest of the system consumes the API interface, never the concrete
client, so tests substitute call-counting mocks and production wraps
the client in a circuit breaker.

Key Components:

  - Client: rate-limited HTTP client with bounded retries
  - Breaker: circuit breaker wrapper (sony/gobreaker) implementing API
  - ErrNotFound: sentinel for usernames the directory does not know

Resilience Mechanisms:

  - Rate Limiting: token bucket (golang.org/x/time) ahead of every
    request, shared across all operations and retries
  - Retries: 429/5xx and transport errors retried with exponential
    backoff; Retry-After honored on 429
  - Circuit Breaker: opens at 60% failures over a minimum sample,
    sheds load while open, probes a bounded number of requests
    half-open; not-found answers never count as failures
  - Context: all methods accept context for cancellation, including
    during backoff waits

Error Semantics:

A 404 means the directory answered: FetchGenome wraps ErrNotFound and
callers decide (the cache skips the candidate, the API returns 404).
Everything else is a transport or upstream fault and flows through the
breaker's failure accounting. Search treats empty result sets as
ordinary successful responses.

Authentication uses a bearer token from configuration. The key is
never logged in full; construction logs it through
logging.SanitizeToken.
*/
package directory
