// Package gemini provides Google Gemini implementations of docchain
// services.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docchain"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// MaxSummaryWords caps the amount of document text sent for summarization.
const MaxSummaryWords = 12000

// Ensure Summarizer implements docchain.Summarizer at compile time.
var _ docchain.Summarizer = (*Summarizer)(nil)

// Summarizer implements docchain.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects
// DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize returns a short description of a compiled document.
func (s *Summarizer) Summarize(ctx context.Context, content string, pageCount int) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", docchain.Errorf(docchain.EINVALID, "content required")
	}
	if s.client == nil {
		return "", docchain.Errorf(docchain.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildSummaryPrompt(content, pageCount)}},
		}},
		BuildSummaryConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docchain.Errorf(docchain.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// BuildSummaryConfig returns the GenerateContentConfig for summary calls.
func BuildSummaryConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You write short descriptions of software documentation guides. Reply with two or three plain sentences describing what the guide covers and who it is for. Do not use markdown, lists or headings.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildSummaryPrompt builds the prompt for a document spanning pageCount
// pages. Content beyond MaxSummaryWords words is dropped.
func BuildSummaryPrompt(content string, pageCount int) string {
	words := strings.Fields(content)
	truncated := len(words) > MaxSummaryWords
	if truncated {
		content = strings.Join(words[:MaxSummaryWords], " ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<guide pages=\"%d\"", pageCount)
	if truncated {
		sb.WriteString(" truncated=\"true\"")
	}
	sb.WriteString(">\n")
	sb.WriteString(content)
	sb.WriteString("\n</guide>\n\n")
	sb.WriteString("Describe this guide.")
	return sb.String()
}
