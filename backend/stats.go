package main

import (
	"log"
	"time"
)

// SearchStats accumulates counters for a single FindBestTurn invocation.
type SearchStats struct {
	Nodes           int
	Cutoffs         int
	TTProbes        int
	TTHits          int
	TTStores        int
	EvalCacheProbes int
	EvalCacheHits   int
	CandidateCount  int
	PairsExplored   int
	CompletedDepth  int
	Start           time.Time
	DepthDurations  []time.Duration
}

func newSearchStats() *SearchStats {
	return &SearchStats{Start: time.Now()}
}

func (s *SearchStats) markDepthDone(depth int, began time.Time) {
	s.CompletedDepth = depth
	s.DepthDurations = append(s.DepthDurations, time.Since(began))
}

func (s *SearchStats) Elapsed() time.Duration {
	return time.Since(s.Start)
}

func (s *SearchStats) log(prefix string, chosen Turn, score float64) {
	log.Printf("[%s] depth=%d nodes=%d cutoffs=%d tt=%d/%d evalCache=%d/%d pairs=%d cand=%d turn=%s score=%.1f in %s",
		prefix, s.CompletedDepth, s.Nodes, s.Cutoffs,
		s.TTHits, s.TTProbes, s.EvalCacheHits, s.EvalCacheProbes,
		s.PairsExplored, s.CandidateCount, chosen.String(), score, s.Elapsed().Round(time.Millisecond))
}
