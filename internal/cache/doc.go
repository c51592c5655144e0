// Package cache provides the small set of named TTL caches the engine
// keeps in front of slow upstream calls: raw Overpass query responses,
// parent-relation lookups, and authenticated-user profiles — mirroring
// the teacher's three separate cachetools.TTLCache instances rather than
// one shared cache, since each has its own size/TTL tuned to its hit
// pattern.
//
// Key features:
//   - New: builds one named cache with its own capacity and TTL.
//   - Caches: a process-wide registry of the three caches the pipeline
//     needs, built once at startup.
//
// Complexity: O(1) amortized get/set per jellydator/ttlcache/v3.
package cache
