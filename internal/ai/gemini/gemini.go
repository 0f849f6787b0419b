package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

type GeminiClient struct {
	Client     *genai.Client
	FlashModel string
	ProModel   string
}

func NewGenAIClient(apiKey, flashModelName, proModelName string) (*GeminiClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	return &GeminiClient{
		Client:     client,
		FlashModel: flashModelName,
		ProModel:   proModelName,
	}, nil
}

// SendAIWithWebSearch sends a prompt to the pro model with the search
// grounding tool attached and decodes the JSON reply.
func (g *GeminiClient) SendAIWithWebSearch(ctx context.Context, prompt string) (map[string]any, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := g.Client.Models.GenerateContent(ctx, g.ProModel, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with web search: %w", classifyError(err))
	}
	return decodeJSONResponse(resp)
}

// SendAIWithImages sends a prompt with raw image bytes to the flash model.
func (g *GeminiClient) SendAIWithImages(ctx context.Context, prompt string, images [][]byte) (map[string]any, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}

	for i, img := range images {
		if len(img) == 0 {
			slog.Warn("Empty image data at index, skipping", "index", i)
			continue
		}
		parts = append(parts, genai.NewPartFromBytes(img, detectImageMIMEType(img)))
	}

	slog.Info("Sending AI request with images",
		"prompt_length", len(prompt),
		"image_count", len(parts)-1)

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.Client.Models.GenerateContent(ctx, g.FlashModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with images: %w", classifyError(err))
	}
	return decodeJSONResponse(resp)
}

// decodeJSONResponse extracts the first text part, strips any markdown fence,
// and unmarshals the JSON object. A reply that cannot be parsed surfaces as
// ErrResponseExtract, never as a transport error.
func decodeJSONResponse(resp *genai.GenerateContentResponse) (map[string]any, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no content returned", ErrResponseExtract)
	}
	part := resp.Candidates[0].Content.Parts[0]
	if part.Text == "" {
		return nil, fmt.Errorf("%w: response part carries no text", ErrResponseExtract)
	}

	aiResponse := part.Text
	if strings.HasPrefix(aiResponse, "```json") {
		aiResponse = strings.TrimPrefix(aiResponse, "```json\n")
		aiResponse = strings.TrimSuffix(aiResponse, "\n```")
	}
	aiResponse = strings.TrimSpace(aiResponse)

	// Grounded replies sometimes wrap the object in prose; recover the
	// outermost braces before giving up.
	if !strings.HasPrefix(aiResponse, "{") {
		start := strings.Index(aiResponse, "{")
		end := strings.LastIndex(aiResponse, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("%w: no JSON object in response", ErrResponseExtract)
		}
		aiResponse = aiResponse[start : end+1]
	}

	var resultMap map[string]any
	if err := json.Unmarshal([]byte(aiResponse), &resultMap); err != nil {
		return nil, fmt.Errorf("%w: %v. Raw response was: %s", ErrResponseExtract, err, aiResponse)
	}
	return resultMap, nil
}

// SendAIWithWebSearchAndRetry attempts the request with automatic failover across multiple clients
func SendAIWithWebSearchAndRetry(ctx context.Context, prompt string, selector *GeminiClientSelector) (map[string]any, error) {
	var result map[string]any

	err := selector.TryAllClients(func(client *GeminiClient, clientIdx int) error {
		resp, err := client.SendAIWithWebSearch(ctx, prompt)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SendAIWithImagesAndRetry attempts the request with automatic failover across multiple clients
func SendAIWithImagesAndRetry(ctx context.Context, prompt string, images [][]byte, selector *GeminiClientSelector) (map[string]any, error) {
	var result map[string]any

	err := selector.TryAllClients(func(client *GeminiClient, clientIdx int) error {
		resp, err := client.SendAIWithImages(ctx, prompt, images)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// detectImageMIMEType detects the MIME type of an image based on magic bytes
func detectImageMIMEType(data []byte) string {
	if len(data) < 8 {
		return "image/jpeg"
	}

	// PNG: 89 50 4E 47
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}

	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}

	// GIF: 47 49 46 38
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x38 {
		return "image/gif"
	}

	// WebP: 52 49 46 46 ... 57 45 42 50
	if data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 {
		if len(data) > 11 && data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50 {
			return "image/webp"
		}
	}

	return "image/jpeg"
}
