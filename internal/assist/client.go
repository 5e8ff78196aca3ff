package assist

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client covers the generative helpers the composition screens call:
// letter-writing prompt suggestions and audio transcription.
type Client interface {
	GeneratePrompts(ctx context.Context, receiverName string, occasion string) ([]string, error)
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// OpenAIClient implements Client against the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient builds a client with the given API key.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey)}
}

// GeneratePrompts returns short letter-writing prompts for the receiver.
func (c *OpenAIClient) GeneratePrompts(ctx context.Context, receiverName string, occasion string) ([]string, error) {
	userPrompt := fmt.Sprintf("Suggest three short, warm writing prompts for a letter to %s.", receiverName)
	if occasion != "" {
		userPrompt += fmt.Sprintf(" The occasion is: %s.", occasion)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write prompts for heartfelt letters between friends. Answer with one prompt per line, no numbering.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate prompts: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generate prompts: empty response")
	}

	var prompts []string
	for _, line := range strings.Split(resp.Choices[0].Message.Content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-•* "))
		if line != "" {
			prompts = append(prompts, line)
		}
	}
	return prompts, nil
}

// Transcribe converts an audio recording to text.
func (c *OpenAIClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return resp.Text, nil
}
