// Package llm provides a line classifier backed by an OpenAI-compatible
// chat-completions API. It implements the same contract as the heuristic
// classifier and falls back to it whenever the remote answer is missing
// or unparseable, so the output categories are always total.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/Sumatoshi-tech/gitgauge/internal/classify"
	"github.com/Sumatoshi-tech/gitgauge/internal/config"
)

// ErrEmptyResponse is returned when the API responds with no choices.
var ErrEmptyResponse = errors.New("llm returned empty response")

const systemPrompt = "You classify added source code lines. " +
	"For each numbered line, answer with the line number, a colon, and exactly one of: " +
	"functional, comment, debug, blank. One answer per line, nothing else."

// Classifier classifies lines remotely in batches. Classify serves from
// the primed cache and falls back to the heuristic classifier for lines
// the remote call did not cover.
type Classifier struct {
	client   *openai.Client
	model    string
	fallback classify.Classifier

	mu    sync.Mutex
	cache map[string]classify.Category
}

// New creates a remote classifier from the given settings.
func New(cfg config.LLMConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)

	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Classifier{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    cfg.Model,
		fallback: classify.NewHeuristic(),
		cache:    make(map[string]classify.Category),
	}
}

// Classify returns the remote category for line when primed, otherwise
// the heuristic result.
func (c *Classifier) Classify(line string) classify.Category {
	c.mu.Lock()
	category, ok := c.cache[line]
	c.mu.Unlock()

	if ok {
		return category
	}

	return c.fallback.Classify(line)
}

// Prime classifies a batch of lines with one chat-completion request and
// stores the parsed answers. Unparsed lines stay on the heuristic path.
func (c *Classifier) Prime(ctx context.Context, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(lines)},
		},
	})
	if err != nil {
		return fmt.Errorf("classify lines: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ErrEmptyResponse
	}

	parsed := parseBatch(resp.Choices[0].Message.Content, lines)

	c.mu.Lock()
	for line, category := range parsed {
		c.cache[line] = category
	}
	c.mu.Unlock()

	return nil
}

// buildPrompt numbers the lines one-based for the model.
func buildPrompt(lines []string) string {
	var b strings.Builder

	for i, line := range lines {
		fmt.Fprintf(&b, "%d: %s\n", i+1, line)
	}

	return b.String()
}

// parseBatch maps "N: category" answer lines back onto the input lines.
// Malformed answers and out-of-range numbers are dropped.
func parseBatch(response string, lines []string) map[string]classify.Category {
	parsed := make(map[string]classify.Category)

	for _, answer := range strings.Split(response, "\n") {
		num, rest, found := strings.Cut(strings.TrimSpace(answer), ":")
		if !found {
			continue
		}

		idx, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil || idx < 1 || idx > len(lines) {
			continue
		}

		category, ok := categoryFromName(strings.TrimSpace(strings.ToLower(rest)))
		if !ok {
			continue
		}

		parsed[lines[idx-1]] = category
	}

	return parsed
}

func categoryFromName(name string) (classify.Category, bool) {
	switch name {
	case "functional":
		return classify.Functional, true
	case "comment":
		return classify.Comment, true
	case "debug":
		return classify.Debug, true
	case "blank":
		return classify.Blank, true
	default:
		return classify.Functional, false
	}
}
