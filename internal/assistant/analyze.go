package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/okravets/freightdesk/internal/llm"
)

// AnalysisMode selects how an uploaded file is analyzed.
type AnalysisMode string

const (
	// ModeChat answers a specific question about the file content.
	ModeChat AnalysisMode = "chat"
	// ModeComprehensive produces a full structured report without a
	// question.
	ModeComprehensive AnalysisMode = "comprehensive"
)

const analystSystemPrompt = "You are a customs and logistics data analyst expert. Provide detailed analysis of import/export data."

// Analyzer runs standalone file analysis, outside any conversation.
type Analyzer struct {
	client          llm.ChatClient
	maxContentChars int
}

func NewAnalyzer(client llm.ChatClient, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{client: client, maxContentChars: DefaultMaxContentChars}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithAnalyzerMaxContentChars overrides the file truncation limit.
func WithAnalyzerMaxContentChars(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxContentChars = n
		}
	}
}

// AnalyzeRequest describes one analysis run. Question is required in chat
// mode and ignored in comprehensive mode.
type AnalyzeRequest struct {
	FileName    string
	FileType    string
	FileContent string
	Question    string
	Mode        AnalysisMode
}

// Analyze sends the file to the model and returns the analysis text.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) (string, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeComprehensive
	}

	var userPrompt string
	switch mode {
	case ModeChat:
		if strings.TrimSpace(req.Question) == "" {
			return "", ErrEmptyMessage
		}
		content := TruncateContent(req.FileContent, a.maxContentChars)
		userPrompt = fmt.Sprintf(
			"The user uploaded a %s file named %q with the following content:\n\n%s\n\nThe user asks: %s\n\nAnswer based on the file content.",
			req.FileType, req.FileName, content, req.Question,
		)
	case ModeComprehensive:
		userPrompt = fmt.Sprintf(`Analyze this customs data file named %q (%s format).

Please provide:
1. General overview of the imports/exports
2. Top 20 goods by weight
3. Top 20 companies for each of these goods
4. Key insights and trends
5. Recommendations for duty optimization

Format your response in markdown.`, req.FileName, req.FileType)
		if req.FileContent != "" {
			userPrompt += "\n\nFile content:\n\n" + TruncateContent(req.FileContent, a.maxContentChars)
		}
	default:
		return "", fmt.Errorf("unknown analysis mode %q", mode)
	}

	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Task: llm.TaskFileAnalysis,
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: analystSystemPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
