package domain

// Analysis is the structured result returned by the analysis provider.
// All five collections must be present (possibly empty) for a result to be
// valid; presence is enforced by the provider adapter before construction.
type Analysis struct {
	Strengths     []Strength       `json:"strengths"`
	MissingSkills []MissingSkill   `json:"missingSkills"`
	SkillMatch    SkillMatch       `json:"skillMatch"`
	Suggestions   []Suggestion     `json:"suggestions"`
	BulletPoints  []BulletPointSet `json:"bulletPoints"`
}

type Strength struct {
	Skill       string  `json:"skill"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

type MissingSkill struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	Suggestion string `json:"suggestion"`
}

type SkillMatch struct {
	TargetJob       string   `json:"targetJob"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
}

type Suggestion struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type BulletPointSet struct {
	Category string   `json:"category"`
	Points   []string `json:"points"`
}

// SkillMatchReport is the result of the narrower skill-match path, computed
// from locally recognized skills rather than a full analysis.
type SkillMatchReport struct {
	MatchPercentage float64  `json:"matchPercentage"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Explanation     string   `json:"explanation"`
	// CandidateSkills are the locally recognized tokens the comparison was
	// fed. Filled by the caller, never by the provider.
	CandidateSkills []string `json:"candidateSkills,omitempty"`
}

// AnalysisOutcome pairs a completed analysis with its wall-clock duration.
type AnalysisOutcome struct {
	Analysis     Analysis `json:"analysis"`
	ProcessingMs int64    `json:"processingMs"`
}

// AnalysisSummary is the compact projection surfaced on single-record reads.
type AnalysisSummary struct {
	TotalStrengths       int     `json:"totalStrengths"`
	TotalMissingSkills   int     `json:"totalMissingSkills"`
	SkillMatchPercentage float64 `json:"skillMatchPercentage"`
	TotalSuggestions     int     `json:"totalSuggestions"`
}

// Summary derives the compact projection; nil when no analysis is present.
func (r *Resume) Summary() *AnalysisSummary {
	if r.Analysis == nil {
		return nil
	}
	return &AnalysisSummary{
		TotalStrengths:       len(r.Analysis.Strengths),
		TotalMissingSkills:   len(r.Analysis.MissingSkills),
		SkillMatchPercentage: r.Analysis.SkillMatch.MatchPercentage,
		TotalSuggestions:     len(r.Analysis.Suggestions),
	}
}

// Normalize clamps the match percentage into [0,100] and replaces nil
// collections with empty ones so serialized results always carry all five
// fields.
func (a *Analysis) Normalize() {
	a.SkillMatch.MatchPercentage = ClampPercentage(a.SkillMatch.MatchPercentage)
	if a.Strengths == nil {
		a.Strengths = []Strength{}
	}
	if a.MissingSkills == nil {
		a.MissingSkills = []MissingSkill{}
	}
	if a.Suggestions == nil {
		a.Suggestions = []Suggestion{}
	}
	if a.BulletPoints == nil {
		a.BulletPoints = []BulletPointSet{}
	}
	if a.SkillMatch.MatchedSkills == nil {
		a.SkillMatch.MatchedSkills = []string{}
	}
	if a.SkillMatch.MissingSkills == nil {
		a.SkillMatch.MissingSkills = []string{}
	}
}

func ClampPercentage(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
