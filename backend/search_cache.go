package main

type evalCacheEntry struct {
	key   uint64
	score float64
	valid bool
}

type childKey struct {
	parent uint64
	first  Move
	second Move
	count  int
}

type childEntry struct {
	state *GameState
	ended bool
}

// SearchCache scopes the caching for one FindBestTurn call: simulated child
// states and leaf evaluations are discarded with the search, while the
// transposition table lives across turns and is only referenced here.
type SearchCache struct {
	tt          *TranspositionTable
	evalEntries []evalCacheEntry
	evalMask    uint64
	children    map[childKey]childEntry
}

func NewSearchCache(tt *TranspositionTable, config Config) *SearchCache {
	cache := &SearchCache{
		tt:       tt,
		children: make(map[childKey]childEntry),
	}
	if config.AiEnableEvalCache {
		size := nextPowerOfTwo(uint64(config.AiEvalCacheSize))
		cache.evalEntries = make([]evalCacheEntry, size)
		cache.evalMask = size - 1
	}
	return cache
}

func (c *SearchCache) lookupEval(key uint64) (float64, bool) {
	if c.evalEntries == nil {
		return 0, false
	}
	entry := c.evalEntries[key&c.evalMask]
	if !entry.valid || entry.key != key {
		return 0, false
	}
	return entry.score, true
}

func (c *SearchCache) storeEval(key uint64, score float64) {
	if c.evalEntries == nil {
		return
	}
	c.evalEntries[key&c.evalMask] = evalCacheEntry{key: key, score: score, valid: true}
}

// childState returns the state reached by playing turn from parent, cloning
// and applying only on the first request. The turn must already be validated;
// an apply failure surfaces as a nil state.
func (c *SearchCache) childState(parent *GameState, turn Turn, rules Rules) (*GameState, bool) {
	key := childKey{parent: StateKey(*parent), count: len(turn)}
	if len(turn) > 0 {
		key.first = turn[0]
	}
	if len(turn) > 1 {
		key.second = turn[1]
	}
	if entry, ok := c.children[key]; ok {
		return entry.state, entry.ended
	}
	child := parent.Clone()
	ended, err := rules.ApplyTurn(&child, turn)
	if err != nil {
		return nil, false
	}
	entry := childEntry{state: &child, ended: ended}
	c.children[key] = entry
	return entry.state, entry.ended
}

func (c *SearchCache) childCount() int {
	return len(c.children)
}
