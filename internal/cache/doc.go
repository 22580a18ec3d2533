// Package cache stores pipeline results on disk, keyed by a digest of
// everything that determines them.
//
// The pipeline is a pure function of its configuration and declarations, so
// a hit can be replayed without scanning, grouping or rendering again. The
// cache is used by the CLI only; the pipeline itself never caches.
package cache
