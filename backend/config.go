package main

import "sync"

type EvaluatorKind string

const (
	EvaluatorRuns   EvaluatorKind = "runs"
	EvaluatorThreat EvaluatorKind = "threat"
)

type Config struct {
	AiDepth             int           `json:"ai_depth"`
	AiTimeBudgetMs      int           `json:"ai_time_budget_ms"`
	AiUseAlphaBeta      bool          `json:"ai_use_alpha_beta"`
	AiEvaluator         EvaluatorKind `json:"ai_evaluator"`
	AiCandidateLimit    int           `json:"ai_candidate_limit"`
	AiBeamLimit         int           `json:"ai_beam_limit"`
	AiProximityRadius   int           `json:"ai_proximity_radius"`
	AiOpeningRadius     int           `json:"ai_opening_radius"`
	AiOpeningStoneCount int           `json:"ai_opening_stone_count"`
	AiQuickWinExit      bool          `json:"ai_quick_win_exit"`
	AiTtSize            int           `json:"ai_tt_size"`
	AiTtBuckets         int           `json:"ai_tt_buckets"`
	AiEnableEvalCache   bool          `json:"ai_enable_eval_cache"`
	AiEvalCacheSize     int           `json:"ai_eval_cache_size"`
	AiEnableTtPersist   bool          `json:"ai_enable_tt_persistence"`
	AiTtPersistencePath string        `json:"ai_tt_persistence_path"`
	AiLogSearchStats    bool          `json:"ai_log_search_stats"`
	AnalysisMode        bool          `json:"analysis_mode"`
	AnalysisThrottleMs  int           `json:"analysis_throttle_ms"`
	Heuristics          HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	Run2           float64 `json:"run_2"`
	Run3           float64 `json:"run_3"`
	Run4           float64 `json:"run_4"`
	Run5           float64 `json:"run_5"`
	OpenFiveThreat float64 `json:"open_five_threat"`
	CenterPerStep  float64 `json:"center_per_step"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiDepth:        3,
		AiTimeBudgetMs: 2000,
		AiUseAlphaBeta: true,
		AiEvaluator:    EvaluatorThreat,

		// Branching control: the candidate limit is the primary speed lever;
		// the beam bounds how many ordered pairs each node actually expands.
		AiCandidateLimit:    16,
		AiBeamLimit:         24,
		AiProximityRadius:   2,
		AiOpeningRadius:     3,
		AiOpeningStoneCount: 5,

		AiQuickWinExit: true,

		AiTtSize:          1 << 16,
		AiTtBuckets:       4,
		AiEnableEvalCache: true,
		AiEvalCacheSize:   1 << 17,

		AiEnableTtPersist:   false,
		AiTtPersistencePath: "tt_snapshot.gob",

		AiLogSearchStats:   false,
		AnalysisMode:       false,
		AnalysisThrottleMs: 50,

		Heuristics: HeuristicConfig{
			Run2:           1.0,
			Run3:           10.0,
			Run4:           100.0,
			Run5:           1000.0,
			OpenFiveThreat: 5000.0,
			CenterPerStep:  0.1,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = sanitizeConfig(newConfig)
	c.mu.Unlock()
}

// sanitizeConfig backfills zero values so a partial /api/settings payload
// cannot wedge the engine with a zero branching factor or empty weights.
func sanitizeConfig(config Config) Config {
	defaults := DefaultConfig()
	if config.AiDepth <= 0 {
		config.AiDepth = defaults.AiDepth
	}
	if config.AiCandidateLimit <= 0 {
		config.AiCandidateLimit = defaults.AiCandidateLimit
	}
	if config.AiBeamLimit <= 0 {
		config.AiBeamLimit = defaults.AiBeamLimit
	}
	if config.AiBeamLimit < config.AiCandidateLimit {
		config.AiBeamLimit = config.AiCandidateLimit
	}
	if config.AiProximityRadius <= 0 {
		config.AiProximityRadius = defaults.AiProximityRadius
	}
	if config.AiOpeningRadius <= 0 {
		config.AiOpeningRadius = defaults.AiOpeningRadius
	}
	if config.AiOpeningStoneCount <= 0 {
		config.AiOpeningStoneCount = defaults.AiOpeningStoneCount
	}
	if config.AiEvaluator != EvaluatorRuns && config.AiEvaluator != EvaluatorThreat {
		config.AiEvaluator = defaults.AiEvaluator
	}
	if config.AiTtSize <= 0 {
		config.AiTtSize = defaults.AiTtSize
	}
	if config.AiTtBuckets <= 0 {
		config.AiTtBuckets = defaults.AiTtBuckets
	}
	if config.AiEvalCacheSize <= 0 {
		config.AiEvalCacheSize = defaults.AiEvalCacheSize
	}
	if config.Heuristics == (HeuristicConfig{}) {
		config.Heuristics = defaults.Heuristics
	}
	return config
}

func resolvedHeuristicConfig(config Config) HeuristicConfig {
	defaults := DefaultConfig().Heuristics
	heuristics := config.Heuristics
	if heuristics == (HeuristicConfig{}) {
		return defaults
	}
	if heuristics.Run2 == 0 {
		heuristics.Run2 = defaults.Run2
	}
	if heuristics.Run3 == 0 {
		heuristics.Run3 = defaults.Run3
	}
	if heuristics.Run4 == 0 {
		heuristics.Run4 = defaults.Run4
	}
	if heuristics.Run5 == 0 {
		heuristics.Run5 = defaults.Run5
	}
	if heuristics.OpenFiveThreat == 0 {
		heuristics.OpenFiveThreat = defaults.OpenFiveThreat
	}
	if heuristics.CenterPerStep == 0 {
		heuristics.CenterPerStep = defaults.CenterPerStep
	}
	return heuristics
}
