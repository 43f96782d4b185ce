package openai

import (
	"fmt"
	"strings"
)

const (
	analysisSystemPrompt   = "You are an expert resume analyst and career advisor. Analyze resumes objectively and provide actionable insights."
	bulletSystemPrompt     = "You are an expert resume writer. Generate compelling bullet points that highlight achievements and impact."
	skillMatchSystemPrompt = "You are an expert in skill matching and job analysis."

	analysisPromptTextLimit = 3000
	bulletPromptTextLimit   = 2000
)

// truncateForPrompt bounds the resume text included in a prompt so a long
// document cannot blow the provider's context window. The limit counts
// characters, not bytes, so a multibyte rune is never split. The ellipsis
// signals to the model that the text continues.
func truncateForPrompt(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func buildAnalysisPrompt(resumeText, targetRole string) string {
	return fmt.Sprintf(`Please analyze the following resume for a %[1]s position and provide a comprehensive analysis in JSON format.

Resume Text:
%[2]s

Please provide the analysis in the following JSON structure:

{
  "strengths": [
    {
      "skill": "skill name",
      "confidence": 0.85,
      "description": "brief description of why this is a strength"
    }
  ],
  "missingSkills": [
    {
      "skill": "skill name",
      "importance": "high|medium|low",
      "suggestion": "how to acquire or improve this skill"
    }
  ],
  "skillMatch": {
    "targetJob": "%[1]s",
    "matchPercentage": 75,
    "matchedSkills": ["skill1", "skill2"],
    "missingSkills": ["skill3", "skill4"]
  },
  "suggestions": [
    {
      "category": "content|format|skills",
      "title": "suggestion title",
      "description": "detailed suggestion",
      "priority": "high|medium|low"
    }
  ],
  "bulletPoints": [
    {
      "category": "experience|skills|achievements",
      "points": [
        "Improved system performance by 40%% through optimization",
        "Led team of 5 developers in agile environment"
      ]
    }
  ]
}

Focus on:
1. Technical skills relevant to %[1]s
2. Quantifiable achievements
3. Leadership and soft skills
4. Areas for improvement
5. Actionable suggestions`,
		targetRole,
		truncateForPrompt(resumeText, analysisPromptTextLimit),
	)
}

func buildBulletPointsPrompt(resumeText, category string) string {
	return fmt.Sprintf(`Based on the following resume text, generate 5-8 strong bullet points for the %s section:

%s

Requirements:
- Use action verbs
- Include quantifiable results when possible
- Focus on achievements and impact
- Keep each point concise but impactful
- Format as a JSON array of strings

Return only the JSON array of bullet points.`,
		category,
		truncateForPrompt(resumeText, bulletPromptTextLimit),
	)
}

func buildSkillMatchPrompt(candidateSkills []string, targetRole string) string {
	return fmt.Sprintf(`Calculate the skill match percentage between the candidate's skills and the required skills for a %[1]s position.

Candidate Skills: %[2]s

Required Skills for %[1]s: %[3]s

Provide the analysis in JSON format:
{
  "matchPercentage": 75,
  "matchedSkills": ["skill1", "skill2"],
  "missingSkills": ["skill3", "skill4"],
  "explanation": "brief explanation of the match"
}`,
		targetRole,
		strings.Join(candidateSkills, ", "),
		strings.Join(defaultSkillsForRole(targetRole), ", "),
	)
}

var roleSkillBaselines = map[string][]string{
	"Software Engineer":  {"JavaScript", "Python", "React", "Node.js", "Git", "SQL", "REST APIs"},
	"Frontend Developer": {"JavaScript", "React", "HTML", "CSS", "TypeScript", "Git", "Responsive Design"},
	"Backend Developer":  {"Python", "Node.js", "SQL", "MongoDB", "REST APIs", "Git", "Docker"},
	"Data Scientist":     {"Python", "R", "SQL", "Machine Learning", "Statistics", "Pandas", "NumPy"},
	"DevOps Engineer":    {"Docker", "Kubernetes", "AWS", "Linux", "CI/CD", "Git", "Monitoring"},
	"Product Manager":    {"Product Strategy", "User Research", "Agile", "Data Analysis", "Communication", "Leadership"},
	"UX Designer":        {"User Research", "Figma", "Prototyping", "User Testing", "Design Systems", "Wireframing"},
}

// defaultSkillsForRole returns the baseline skill set expected for a known
// role title. Unknown titles fall back to the Software Engineer baseline.
func defaultSkillsForRole(role string) []string {
	if skills, ok := roleSkillBaselines[role]; ok {
		return skills
	}
	return roleSkillBaselines["Software Engineer"]
}
