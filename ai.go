package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient calls the external text-generation service. The core of the
// server does not depend on it functioning; its failures surface as
// UpstreamError and never touch board state.
type GeminiClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    "https://generativelanguage.googleapis.com",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListSuggestion is the shape the model is asked to produce for a whole list.
type ListSuggestion struct {
	ListTitle  string   `json:"listTitle"`
	CardTitles []string `json:"cardTitles"`
}

// SubtaskSuggestion is the shape for breaking one card down.
type SubtaskSuggestion struct {
	Subtasks []string `json:"subtasks"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Message: "Failed to reach the text-generation service", Err: err}
	}
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Message: "Failed to read the text-generation response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Message: "Text-generation service returned an error", Err: fmt.Errorf("status %d: %s", resp.StatusCode, respBytes)}
	}

	var respData struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBytes, &respData); err != nil {
		return "", &UpstreamError{Message: "Malformed text-generation response", Err: err}
	}
	if len(respData.Candidates) == 0 || len(respData.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{Message: "Text-generation response contained no output"}
	}
	return respData.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences removes markdown code fences the model sometimes wraps its JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (c *GeminiClient) GenerateList(ctx context.Context, userPrompt string) (*ListSuggestion, error) {
	metaPrompt := fmt.Sprintf(`Based on the following user request, generate a relevant list title and an array of 3 to 5 task card titles.
User Request: %q

Respond with ONLY a valid JSON object in the following format, with no other text or markdown formatting:
{
  "listTitle": "A creative and relevant title for the list",
  "cardTitles": ["First task", "Second task", "Third task"]
}`, userPrompt)

	raw, err := c.generate(ctx, metaPrompt)
	if err != nil {
		return nil, err
	}
	var out ListSuggestion
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return nil, &UpstreamError{Message: "Failed to generate list from AI.", Err: err}
	}
	return &out, nil
}

func (c *GeminiClient) GenerateSubtasks(ctx context.Context, userPrompt string) (*SubtaskSuggestion, error) {
	metaPrompt := fmt.Sprintf(`Break the following task down into 3 to 6 concrete subtasks.
Task: %q

Respond with ONLY a valid JSON object in the following format, with no other text or markdown formatting:
{
  "subtasks": ["First subtask", "Second subtask"]
}`, userPrompt)

	raw, err := c.generate(ctx, metaPrompt)
	if err != nil {
		return nil, err
	}
	var out SubtaskSuggestion
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return nil, &UpstreamError{Message: "Failed to generate subtasks from AI.", Err: err}
	}
	return &out, nil
}

// --- Handlers ---

func (a *App) handleGenerateList(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("[POST] /api/ai/generate-list")
	var cmd GenerateCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if a.ai == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "AI API key is not configured on the server."})
		return
	}
	suggestion, err := a.ai.GenerateList(r.Context(), cmd.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func (a *App) handleGenerateSubtasks(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("[POST] /api/ai/generate-subtasks")
	var cmd GenerateCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, err)
		return
	}
	if err := cmd.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if a.ai == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "AI API key is not configured on the server."})
		return
	}
	suggestion, err := a.ai.GenerateSubtasks(r.Context(), cmd.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}
