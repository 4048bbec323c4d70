// Package standings fetches rendered division standings templates from the
// encyclopedia API and scrapes them into typed conference/division tables.
//
// The upstream markup is not under our control, so the parser is tolerant by
// construction: it accepts any table whose caption or preceding heading names
// a known division, keeps rows whose win/loss cells start with a digit, and
// reports what it dropped instead of failing.
package standings
