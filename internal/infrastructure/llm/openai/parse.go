package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

// requiredAnalysisFields are the sections an analysis reply must carry before
// it is persisted. A reply missing any of them is rejected whole rather than
// stored partially.
var requiredAnalysisFields = []string{"strengths", "missingSkills", "skillMatch", "suggestions", "bulletPoints"}

// parseAnalysis turns a model reply into a validated Analysis. Models wrap
// JSON in prose or code fences often enough that the payload is sliced out
// by brace matching before decoding.
func parseAnalysis(raw string) (domain.Analysis, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return domain.Analysis{}, domain.WrapError(domain.ErrMalformedResponse, "parse analysis", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return domain.Analysis{}, domain.WrapError(domain.ErrMalformedResponse, "parse analysis", err)
	}
	for _, field := range requiredAnalysisFields {
		if _, ok := fields[field]; !ok {
			return domain.Analysis{}, domain.WrapError(
				domain.ErrIncompleteAnalysis,
				"parse analysis",
				fmt.Errorf("missing required field: %s", field),
			)
		}
	}

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return domain.Analysis{}, domain.WrapError(domain.ErrMalformedResponse, "parse analysis", err)
	}
	analysis.Normalize()
	return analysis, nil
}

func parseBulletPoints(raw string) ([]string, error) {
	payload, err := extractJSONArray(raw)
	if err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "parse bullet points", err)
	}

	var points []string
	if err := json.Unmarshal([]byte(payload), &points); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "parse bullet points", err)
	}
	if len(points) == 0 {
		return nil, domain.WrapError(
			domain.ErrMalformedResponse,
			"parse bullet points",
			errors.New("provider returned an empty list"),
		)
	}
	return points, nil
}

func parseSkillMatch(raw string) (domain.SkillMatchReport, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return domain.SkillMatchReport{}, domain.WrapError(domain.ErrMalformedResponse, "parse skill match", err)
	}

	var report domain.SkillMatchReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return domain.SkillMatchReport{}, domain.WrapError(domain.ErrMalformedResponse, "parse skill match", err)
	}
	report.MatchPercentage = domain.ClampPercentage(report.MatchPercentage)
	if report.MatchedSkills == nil {
		report.MatchedSkills = []string{}
	}
	if report.MissingSkills == nil {
		report.MissingSkills = []string{}
	}
	return report, nil
}

func extractJSONObject(raw string) (string, error) {
	return sliceBetween(raw, '{', '}')
}

func extractJSONArray(raw string) (string, error) {
	return sliceBetween(raw, '[', ']')
}

func sliceBetween(raw string, open, close byte) (string, error) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no %c...%c payload in reply", open, close)
	}
	return raw[start : end+1], nil
}
