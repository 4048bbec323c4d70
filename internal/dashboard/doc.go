// Package dashboard renders the scoreboard and standings page and owns the
// per-process session: preferences, the auto-refresh timer and the last
// result of each feed.
package dashboard
