package classifier

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
)

// DefaultPrompt is the instruction sent alongside every image.
const DefaultPrompt = `Look at the image. Reply with exactly "Hot Dog" if it shows a hot dog, otherwise reply with exactly "Not Hot Dog".`

// OpenAIClassifier sends the image to an OpenAI vision model and
// normalizes the textual reply.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	prompt string
	rules  Rules
}

// NewOpenAIClassifier creates a classifier backed by the given OpenAI client.
// Empty model or prompt fall back to gpt-4o and DefaultPrompt.
func NewOpenAIClassifier(client *openai.Client, model, prompt string, rules Rules) *OpenAIClassifier {
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &OpenAIClassifier{
		client: client,
		model:  model,
		prompt: prompt,
		rules:  rules,
	}
}

// Classify uploads the image as a base64 data URL and maps the reply onto a label.
func (c *OpenAIClassifier) Classify(ctx context.Context, image []byte, contentType string) (*Result, error) {
	imageURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(
					responses.ResponseInputMessageContentListParam{
						{
							OfInputText: &responses.ResponseInputTextParam{
								Text: c.prompt,
							},
						},
						{
							OfInputImage: &responses.ResponseInputImageParam{
								Detail:   responses.ResponseInputImageDetailAuto,
								ImageURL: openai.String(imageURL),
							},
						},
					},
					responses.EasyInputMessageRoleUser,
				),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision request: %w", err)
	}

	reply := resp.OutputText()
	return &Result{
		Label:      c.rules.Normalize(reply),
		ModelReply: reply,
	}, nil
}
