// Package assistant exposes the catalog and report sessions over HTTP with
// gin. Every mutating route answers with the refreshed session snapshot so a
// client never has to recompute text on its side.
package assistant
