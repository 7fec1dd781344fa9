package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps the Gemini generative API for crest artwork prompts.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// GenerateCrestConcept asks the model for a short visual concept of a team
// crest. The concept text feeds the image pipeline and is also shown to the
// owner while the artwork renders.
func (c *Client) GenerateCrestConcept(ctx context.Context, teamName, city string, style string) (string, error) {
	prompt := fmt.Sprintf(`
		Design a crest for an amateur soccer team.
		Team name: %s
		City: %s
		Style hint: %s

		Task: Describe the crest in 2-3 sentences: shape, colors, central
		symbol and motto placement. Keep it drawable as a flat vector badge.
		Output: just the description text.
	`, teamName, city, style)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
