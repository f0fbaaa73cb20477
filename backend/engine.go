package main

import "sync"

// sharedEngine holds the transposition table that outlives individual
// searches. It is rebuilt when the configured geometry changes.
type sharedEngine struct {
	mu      sync.Mutex
	tt      *TranspositionTable
	size    int
	buckets int
}

var engine = &sharedEngine{}

func SharedTT(config Config) *TranspositionTable {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.tt == nil || engine.size != config.AiTtSize || engine.buckets != config.AiTtBuckets {
		engine.tt = NewTranspositionTable(uint64(config.AiTtSize), config.AiTtBuckets)
		engine.size = config.AiTtSize
		engine.buckets = config.AiTtBuckets
	}
	return engine.tt
}

func (e *sharedEngine) replace(tt *TranspositionTable, size, buckets int) {
	e.mu.Lock()
	e.tt = tt
	e.size = size
	e.buckets = buckets
	e.mu.Unlock()
}

func (e *sharedEngine) current() (*TranspositionTable, int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tt, e.size, e.buckets
}
