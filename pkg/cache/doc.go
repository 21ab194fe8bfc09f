// Package cache provides a small generic, goroutine-safe LRU cache.
//
// The validation engine uses it to memoize compiled artifacts keyed by their
// source text: regular expressions declared in `pattern` checks and programs
// compiled from `expression` checks. Both are pure functions of their source,
// so a bounded cache keyed by the source string never serves stale data.
//
// # Usage
//
//	programs := cache.NewLRU[string, *vm.Program](256)
//
//	prog, err := programs.GetOrLoad(src, func(src string) (*vm.Program, error) {
//		return expr.Compile(src)
//	})
//
// Failed loads are not cached, so a source that does not compile is compiled
// again on the next lookup and reports the same error.
//
// # Eviction
//
// When the cache holds more than its capacity the least recently used entry is
// dropped. An optional callback registered with OnEvict observes evictions.
package cache
