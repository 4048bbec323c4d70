// Package upstream issues single, timeout-bounded GET requests against the
// third-party APIs behind the proxies and classifies their failures.
package upstream
