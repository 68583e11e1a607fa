// Package store owns the immutable per-domain record collections the
// query engine scans.
//
// A store is loaded exactly once, at process start, from a directory of
// {domain}_db.json files - one per domain in the closed set. Loading is
// all-or-nothing: any missing or malformed file aborts the load, and a
// process must not serve queries from a partial store.
//
// After load the store is never mutated, which is what makes it safe to
// share across concurrent queries without synchronization.
//
// The SQLite snapshot (snapshot.go) is an operational side-channel for
// shipping a loaded dataset as a single file; the engine itself only
// ever reads the in-memory collections.
package store
