package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func makeTestServer(t *testing.T, statusCode int, body any) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, srv.Client()
}

func chatBody(content string) chatResponse {
	var resp chatResponse
	resp.Choices = make([]struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}, 1)
	resp.Choices[0].Message.Content = content
	return resp
}

func TestGenerateContent_Success(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatBody("Java Programming\nPython"))

	repo := NewRepository(srv.URL, "test-key", "test-model", "embed-model", client)
	got, err := repo.GenerateContent(context.Background(), "recommend something")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Java Programming\nPython" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateContent_HTTPError(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusInternalServerError, map[string]string{"error": "server error"})

	repo := NewRepository(srv.URL, "test-key", "test-model", "embed-model", client)
	if _, err := repo.GenerateContent(context.Background(), "recommend"); err == nil {
		t.Fatal("expected error on 5xx response")
	}
}

func TestGenerateContent_EmptyChoices(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatResponse{Choices: nil})

	repo := NewRepository(srv.URL, "test-key", "test-model", "embed-model", client)
	if _, err := repo.GenerateContent(context.Background(), "recommend"); err == nil {
		t.Fatal("expected error when LLM returns no choices")
	}
}

func TestGenerateContent_SetsAuthHeaderAndBody(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatBody("ok"))
	}))
	defer srv.Close()

	repo := NewRepository(srv.URL, "my-secret-key", "gpt-3.5-turbo", "embed-model", srv.Client())
	_, _ = repo.GenerateContent(context.Background(), "hello")

	if gotAuth != "Bearer my-secret-key" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer my-secret-key")
	}
	if gotReq.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q, want gpt-3.5-turbo", gotReq.Model)
	}
	if gotReq.Temperature != 0 {
		t.Errorf("temperature = %d, want 0", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "hello" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestEmbedText_Success(t *testing.T) {
	var resp embeddingsResponse
	resp.Data = make([]struct {
		Embedding []float32 `json:"embedding"`
	}, 1)
	resp.Data[0].Embedding = []float32{0.1, 0.2, 0.3}
	srv, client := makeTestServer(t, http.StatusOK, resp)

	repo := NewRepository(srv.URL, "test-key", "test-model", "embed-model", client)
	got, err := repo.EmbedText(context.Background(), "Java developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 0.1 {
		t.Errorf("unexpected embedding: %v", got)
	}
}

func TestEmbedText_EmptyData(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, embeddingsResponse{})

	repo := NewRepository(srv.URL, "test-key", "test-model", "embed-model", client)
	if _, err := repo.EmbedText(context.Background(), "Java developer"); err == nil {
		t.Fatal("expected error for empty embeddings response")
	}
}

func TestEmbedText_APIError(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, embeddingsResponse{
		Error: &apiError{Message: "model not found", Type: "invalid_request_error"},
	})

	repo := NewRepository(srv.URL, "test-key", "test-model", "embed-model", client)
	if _, err := repo.EmbedText(context.Background(), "Java developer"); err == nil {
		t.Fatal("expected error when the API reports an error body")
	}
}
