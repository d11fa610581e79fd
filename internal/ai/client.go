package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

const (
	fallbackSummary = "AI analysis unavailable"
	missingSummary  = "No summary available"
)

// Result is a normalized enrichment outcome: a short summary of the
// entry plus a mood drawn from the fixed mood set.
type Result struct {
	Summary string      `json:"summary"`
	Mood    models.Mood `json:"mood"`
}

// Analyzer produces an enrichment result for journal content.
// Implementations never fail: any provider or decoding problem is
// absorbed into the fallback result, so callers can treat enrichment
// as best-effort decoration.
type Analyzer interface {
	Analyze(ctx context.Context, content string) Result
}

// FactProvider returns a handful of trivia facts about a calendar date.
// Same never-fails contract as Analyzer.
type FactProvider interface {
	DailyFacts(ctx context.Context, date string) []string
}

// Fallback is the result substituted whenever enrichment cannot
// produce a valid answer.
func Fallback() Result {
	return Result{Summary: fallbackSummary, Mood: models.MoodNeutral}
}

// FallbackFacts are served when the provider cannot supply trivia.
var FallbackFacts = []string{
	"Every day is a fresh page waiting to be written.",
	"Journaling for just five minutes a day improves emotional clarity.",
	"Today is the only day that is exactly like itself.",
}

const analyzeSystemPrompt = `You summarize personal journal entries.
Reply with a single JSON object and nothing else, shaped exactly like:
{"summary": "<one or two sentence summary>", "mood": "<mood>"}
where <mood> is one of: happy, sad, neutral, excited, anxious, calm, angry, grateful.`

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a Client for the given token. baseURL optionally
// points at an OpenAI-compatible proxy; model defaults to GPT-4o mini.
func NewClient(token, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Analyze asks the model for a summary and mood of the given content.
// Blank content short-circuits to the fallback without a provider
// call. One attempt only; no retries.
func (c *Client) Analyze(ctx context.Context, content string) Result {
	if strings.TrimSpace(content) == "" {
		return Fallback()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analyzeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return Fallback()
	}

	return ParseAnalysis(resp.Choices[0].Message.Content)
}

// ParseAnalysis decodes the model's reply. Strict decode first; if the
// reply wraps the object in prose or a code fence, the first balanced
// JSON object is extracted and decoded instead. Anything else yields
// the fallback. An out-of-set mood becomes neutral and an empty
// summary gets a placeholder.
func ParseAnalysis(raw string) Result {
	var decoded struct {
		Summary string `json:"summary"`
		Mood    string `json:"mood"`
	}

	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		obj, ok := firstJSONObject(raw)
		if !ok {
			return Fallback()
		}
		if err := json.Unmarshal([]byte(obj), &decoded); err != nil {
			return Fallback()
		}
	}

	mood := models.Mood(strings.ToLower(strings.TrimSpace(decoded.Mood)))
	if !models.ValidMood(mood) {
		mood = models.MoodNeutral
	}
	summary := strings.TrimSpace(decoded.Summary)
	if summary == "" {
		summary = missingSummary
	}
	return Result{Summary: summary, Mood: mood}
}

// DailyFacts asks the model for three short trivia facts about the
// given date (YYYY-MM-DD). Falls back to fixed generic strings on any
// failure.
func (c *Client) DailyFacts(ctx context.Context, date string) []string {
	prompt := fmt.Sprintf(`Give three short, interesting facts about the calendar date %s (history, science, or culture).
Reply with a JSON array of exactly three strings and nothing else.`, date)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return FallbackFacts
	}

	return ParseFacts(resp.Choices[0].Message.Content)
}

// ParseFacts decodes a JSON string array from the model reply,
// tolerating surrounding prose. Empty or undecodable replies yield
// the fallback facts.
func ParseFacts(raw string) []string {
	var facts []string
	if err := json.Unmarshal([]byte(raw), &facts); err != nil {
		arr, ok := firstJSONArray(raw)
		if !ok {
			return FallbackFacts
		}
		if err := json.Unmarshal([]byte(arr), &facts); err != nil {
			return FallbackFacts
		}
	}

	out := make([]string, 0, len(facts))
	for _, f := range facts {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return FallbackFacts
	}
	return out
}

// firstJSONObject returns the first balanced {...} block in s.
func firstJSONObject(s string) (string, bool) {
	return firstBalanced(s, '{', '}')
}

// firstJSONArray returns the first balanced [...] block in s.
func firstJSONArray(s string) (string, bool) {
	return firstBalanced(s, '[', ']')
}

// firstBalanced scans s for the first balanced open..close block,
// ignoring brackets that appear inside JSON string literals.
func firstBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
