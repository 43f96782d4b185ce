// Package skills recognizes well-known skill tokens in resume text by
// pattern matching. Matching is literal: a token is recognized iff it appears
// whole-word and case-insensitively; there is no stemming and no synonym
// resolution.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

type patternGroup struct {
	category string
	re       *regexp.Regexp
}

type Recognizer struct {
	groups []patternGroup
}

// NewRecognizer compiles the ordered category pattern groups once. The group
// order is stable so recognition output is deterministic across runs.
func NewRecognizer() *Recognizer {
	return &Recognizer{groups: []patternGroup{
		{"languages", regexp.MustCompile(`(?i)\b(JavaScript|Python|Java|C\+\+|C#|PHP|Ruby|Go|Rust|Swift|Kotlin|TypeScript|HTML|CSS|SQL|R|MATLAB|Scala|Perl|Shell|Bash)\b`)},
		{"frameworks", regexp.MustCompile(`(?i)\b(React|Angular|Vue|Node\.js|Express|Django|Flask|Spring|Laravel|ASP\.NET|jQuery|Bootstrap|Tailwind|Sass|Less|Webpack|Babel|Jest|Mocha|Chai)\b`)},
		{"databases", regexp.MustCompile(`(?i)\b(MongoDB|MySQL|PostgreSQL|SQLite|Redis|Oracle|SQL Server|Firebase|DynamoDB|Cassandra|Elasticsearch)\b`)},
		{"cloud", regexp.MustCompile(`(?i)\b(AWS|Azure|Google Cloud|Heroku|DigitalOcean|Vercel|Netlify|Firebase|Docker|Kubernetes)\b`)},
		{"tooling", regexp.MustCompile(`(?i)\b(Git|GitHub|GitLab|Bitbucket|Jenkins|Travis CI|CircleCI|Jira|Confluence|Slack|Trello|Asana|Figma|Sketch|Adobe|Photoshop|Illustrator)\b`)},
		{"soft", regexp.MustCompile(`(?i)\b(Leadership|Communication|Teamwork|Problem Solving|Critical Thinking|Time Management|Adaptability|Creativity|Collaboration|Project Management|Agile|Scrum|Kanban)\b`)},
	}}
}

// Recognize returns the deduplicated, lowercased skill tokens found in text,
// sorted for stable comparison. Empty input yields an empty set.
func (r *Recognizer) Recognize(text string) []string {
	seen := make(map[string]struct{})
	for _, group := range r.groups {
		for _, match := range group.re.FindAllString(text, -1) {
			seen[strings.ToLower(match)] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for skill := range seen {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}
