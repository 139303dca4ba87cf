package services

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

const (
	promptQuestions  = "interview_questions"
	promptCheatsheet = "cheatsheet"
	promptAnalysis   = "transcript_analysis"
)

// Prompt is a rendered instruction plus the sampling temperature it was
// tuned for.
type Prompt struct {
	Name        string
	Text        string
	Temperature float32
}

type promptTemplate struct {
	Temperature float32 `yaml:"temperature"`
	Template    string  `yaml:"template"`

	tmpl *template.Template
}

// PromptBuilder renders the fixed instructional prompts. The candidate's
// texts are embedded verbatim.
type PromptBuilder struct {
	templates map[string]*promptTemplate
}

func NewPromptBuilder() (*PromptBuilder, error) {
	pb := &PromptBuilder{templates: make(map[string]*promptTemplate)}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var pt promptTemplate
		if err := yaml.Unmarshal(data, &pt); err != nil {
			return nil, fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pt.tmpl, err = template.New(name).Option("missingkey=error").Parse(pt.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to compile template %s: %w", name, err)
		}
		pb.templates[name] = &pt
	}

	for _, name := range []string{promptQuestions, promptCheatsheet, promptAnalysis} {
		if _, ok := pb.templates[name]; !ok {
			return nil, fmt.Errorf("template not found: %s", name)
		}
	}

	return pb, nil
}

// BuildQuestionsPrompt creates the prompt for interview question generation.
func (pb *PromptBuilder) BuildQuestionsPrompt(jobText, resumeText string, count int, reference string) (*Prompt, error) {
	return pb.render(promptQuestions, map[string]interface{}{
		"JobText":    jobText,
		"ResumeText": resumeText,
		"Count":      count,
		"Reference":  reference,
	})
}

// BuildCheatsheetPrompt creates the prompt for the preparation cheatsheet.
func (pb *PromptBuilder) BuildCheatsheetPrompt(jobText, resumeText, reference string) (*Prompt, error) {
	return pb.render(promptCheatsheet, map[string]interface{}{
		"JobText":    jobText,
		"ResumeText": resumeText,
		"Reference":  reference,
	})
}

// BuildTranscriptAnalysisPrompt creates the prompt for scoring a transcript.
func (pb *PromptBuilder) BuildTranscriptAnalysisPrompt(transcript, jobText, resumeText string) (*Prompt, error) {
	return pb.render(promptAnalysis, map[string]interface{}{
		"Transcript": transcript,
		"JobText":    jobText,
		"ResumeText": resumeText,
	})
}

func (pb *PromptBuilder) render(name string, data map[string]interface{}) (*Prompt, error) {
	pt := pb.templates[name]

	var sb strings.Builder
	if err := pt.tmpl.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("failed to render prompt %s: %w", name, err)
	}

	return &Prompt{Name: name, Text: sb.String(), Temperature: pt.Temperature}, nil
}

// FormatRAGContext joins retrieved passages into a prompt section.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
