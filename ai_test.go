package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiStub(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		w.WriteHeader(status)
		if status != http.StatusOK {
			return
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func stubClient(upstream *httptest.Server) *GeminiClient {
	c := NewGeminiClient("test-key", "")
	c.BaseURL = upstream.URL
	return c
}

func TestGenerateListParsesResponse(t *testing.T) {
	upstream := geminiStub(t, http.StatusOK, `{"listTitle":"Launch prep","cardTitles":["Write copy","Ship it"]}`)
	defer upstream.Close()

	out, err := stubClient(upstream).GenerateList(context.Background(), "prepare a product launch")
	require.NoError(t, err)
	assert.Equal(t, "Launch prep", out.ListTitle)
	assert.Equal(t, []string{"Write copy", "Ship it"}, out.CardTitles)
}

func TestGenerateListStripsCodeFences(t *testing.T) {
	upstream := geminiStub(t, http.StatusOK, "```json\n{\"listTitle\":\"Fenced\",\"cardTitles\":[\"A\"]}\n```")
	defer upstream.Close()

	out, err := stubClient(upstream).GenerateList(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "Fenced", out.ListTitle)
}

func TestGenerateSubtasksParsesResponse(t *testing.T) {
	upstream := geminiStub(t, http.StatusOK, `{"subtasks":["Split the work","Do the work"]}`)
	defer upstream.Close()

	out, err := stubClient(upstream).GenerateSubtasks(context.Background(), "big task")
	require.NoError(t, err)
	assert.Equal(t, []string{"Split the work", "Do the work"}, out.Subtasks)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	upstream := geminiStub(t, http.StatusInternalServerError, "")
	defer upstream.Close()

	_, err := stubClient(upstream).GenerateList(context.Background(), "anything")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
}

func TestGenerateMalformedModelOutput(t *testing.T) {
	upstream := geminiStub(t, http.StatusOK, "sure, here is your list!")
	defer upstream.Close()

	_, err := stubClient(upstream).GenerateList(context.Background(), "anything")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}

func TestHandleGenerateList(t *testing.T) {
	upstream := geminiStub(t, http.StatusOK, `{"listTitle":"Ideas","cardTitles":["One"]}`)
	defer upstream.Close()

	app, r := newTestServer()
	app.ai = stubClient(upstream)

	w := doRequest(t, r, http.MethodPost, "/api/ai/generate-list", map[string]string{"prompt": "brainstorm"})
	require.Equal(t, http.StatusOK, w.Code)
	var out ListSuggestion
	decodeInto(t, w, &out)
	assert.Equal(t, "Ideas", out.ListTitle)

	w = doRequest(t, r, http.MethodPost, "/api/ai/generate-list", map[string]string{"prompt": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGenerateListUnconfigured(t *testing.T) {
	_, r := newTestServer()

	w := doRequest(t, r, http.MethodPost, "/api/ai/generate-list", map[string]string{"prompt": "brainstorm"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp errorResponse
	decodeInto(t, w, &resp)
	assert.Equal(t, "AI API key is not configured on the server.", resp.Message)
}

func TestHandleGenerateSubtasksUpstreamError(t *testing.T) {
	upstream := geminiStub(t, http.StatusBadGateway, "")
	defer upstream.Close()

	app, r := newTestServer()
	app.ai = stubClient(upstream)

	w := doRequest(t, r, http.MethodPost, "/api/ai/generate-subtasks", map[string]string{"prompt": "big task"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
