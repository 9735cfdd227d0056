package engine

import (
	"strings"
)

// ScoringConfig weights the terms of Scorer.Score.
type ScoringConfig struct {
	LetterWeight      float64 `yaml:"letter_weight" validate:"gte=0"`
	CommonLetters     string  `yaml:"common_letters" validate:"omitempty,alpha"`
	CommonLetterBoost float64 `yaml:"common_letter_boost" validate:"gte=1"`
	PositionWeight    float64 `yaml:"position_weight" validate:"gte=0"`

	StartLetters string  `yaml:"start_letters" validate:"omitempty,alpha"`
	StartBonus   float64 `yaml:"start_bonus" validate:"gte=0"`
	EndLetters   string  `yaml:"end_letters" validate:"omitempty,alpha"`
	EndBonus     float64 `yaml:"end_bonus" validate:"gte=0"`

	VowelBonus            float64 `yaml:"vowel_bonus" validate:"gte=0"`
	MiddleVowelMultiplier float64 `yaml:"middle_vowel_multiplier" validate:"gte=0"`

	UntestedBonus           float64 `yaml:"untested_bonus" validate:"gte=0"`
	NecessaryDuplicateBonus float64 `yaml:"necessary_duplicate_bonus" validate:"gte=0"`
	DuplicatePenalty        float64 `yaml:"duplicate_penalty" validate:"gte=0"`
	OverMaxPenalty          float64 `yaml:"over_max_penalty" validate:"gte=0"`

	// Pools no larger than SmallPoolSize reward membership; larger pools
	// add EntropyWeight * entropy instead.
	SmallPoolSize   int     `yaml:"small_pool_size" validate:"gte=0"`
	PoolMemberBonus float64 `yaml:"pool_member_bonus" validate:"gte=0"`
	EntropyWeight   float64 `yaml:"entropy_weight" validate:"gte=0"`
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		LetterWeight:      10,
		CommonLetters:     "eariotnslc",
		CommonLetterBoost: 1.25,
		PositionWeight:    20,

		StartLetters: "sctbpafgdm",
		StartBonus:   1.5,
		EndLetters:   "eystdrhnlk",
		EndBonus:     1.5,

		VowelBonus:            1,
		MiddleVowelMultiplier: 1.5,

		UntestedBonus:           2,
		NecessaryDuplicateBonus: 0.5,
		DuplicatePenalty:        3,
		OverMaxPenalty:          10,

		SmallPoolSize:   20,
		PoolMemberBonus: 15,
		EntropyWeight:   10,
	}
}

type letterSet [alphabet]bool

func newLetterSet(s string) letterSet {
	var set letterSet
	for i := 0; i < len(s); i++ {
		if l := letterIndex(s[i]); l >= 0 {
			set[l] = true
		}
	}
	return set
}

func (s *letterSet) has(b byte) bool {
	l := letterIndex(b)
	return l >= 0 && s[l]
}

// Scorer ranks words with frequency heuristics, optionally informed by the
// constraints so far and the remaining candidate pool. Scores are
// deterministic for a given word, constraints and pool.
type Scorer struct {
	tables *FrequencyTables
	cfg    ScoringConfig
	vowels letterSet
	common letterSet
	start  letterSet
	end    letterSet
}

func NewScorer(tables *FrequencyTables, cfg ScoringConfig, vowels string) *Scorer {
	return &Scorer{
		tables: tables,
		cfg:    cfg,
		vowels: newLetterSet(vowels),
		common: newLetterSet(cfg.CommonLetters),
		start:  newLetterSet(cfg.StartLetters),
		end:    newLetterSet(cfg.EndLetters),
	}
}

// Score returns the heuristic value of guessing word. c and pool may be nil.
func (s *Scorer) Score(word string, c *Constraints, pool []string) float64 {
	if word == "" {
		return 0
	}
	cfg := &s.cfg
	counts := countLetters(word)
	last := len(word) - 1

	var score float64
	for l, n := range counts {
		if n == 0 {
			continue
		}
		w := s.tables.letter[l] * cfg.LetterWeight
		if s.common[l] {
			w *= cfg.CommonLetterBoost
		}
		score += w
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		score += s.tables.Position(i, ch) * cfg.PositionWeight
		if s.vowels.has(ch) {
			if i > 0 && i < last {
				score += cfg.VowelBonus * cfg.MiddleVowelMultiplier
			} else {
				score += cfg.VowelBonus
			}
		}
	}
	if s.start.has(word[0]) {
		score += cfg.StartBonus
	}
	if s.end.has(word[last]) {
		score += cfg.EndBonus
	}

	if c != nil {
		score += s.constraintTerms(counts, c)
	}

	if pool != nil {
		if len(pool) <= cfg.SmallPoolSize {
			if containsFold(pool, word) {
				score += cfg.PoolMemberBonus
			}
		} else {
			score += Entropy(word, pool) * cfg.EntropyWeight
		}
	}
	return score
}

func (s *Scorer) constraintTerms(counts [alphabet]int, c *Constraints) float64 {
	cfg := &s.cfg
	var score float64
	for l, n := range counts {
		if n == 0 {
			continue
		}
		if !c.Tested.Test(uint(l)) {
			score += cfg.UntestedBonus
		}
		if n > 1 {
			need := c.MinCounts[l]
			if n <= need {
				score += cfg.NecessaryDuplicateBonus
			} else {
				score -= cfg.DuplicatePenalty * float64(n-max(need, 1))
			}
		}
		if m := c.MaxCounts[l]; m != NoMax && n > m {
			score -= cfg.OverMaxPenalty * float64(n-m)
		}
	}
	return score
}

func containsFold(words []string, word string) bool {
	for _, w := range words {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}
