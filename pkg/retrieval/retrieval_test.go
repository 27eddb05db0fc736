package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestQuerySendsCorpusAndDecodesContexts(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody queryRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(queryResponse{
			Contexts: []Snippet{{Text: "  Apologize first.  "}, {Text: "Check the order."}},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		URL:    server.URL,
		Token:  "secret",
		Corpus: "resolutions",
		TopK:   3,
	})
	if err != nil {
		t.Fatalf("NewClient() = %v", err)
	}

	snippets, err := client.Query(context.Background(), "Intent: cancel_order")
	if err != nil {
		t.Fatalf("Query() = %v", err)
	}

	if gotPath != "/v1/retrieve" {
		t.Fatalf("path = %s, want /v1/retrieve", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization = %q, want bearer token", gotAuth)
	}
	if gotBody.Corpus != "resolutions" || gotBody.Query != "Intent: cancel_order" || gotBody.TopK != 3 {
		t.Fatalf("request body = %+v", gotBody)
	}
	if len(snippets) != 2 {
		t.Fatalf("len(snippets) = %d, want 2", len(snippets))
	}
}

func TestRetrieveFlattensSnippets(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(queryResponse{
			Contexts: []Snippet{{Text: " Apologize first. "}, {Text: "Check the order."}},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL, Corpus: "resolutions"})
	if err != nil {
		t.Fatalf("NewClient() = %v", err)
	}

	got, err := client.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Retrieve() = %v", err)
	}
	want := "Example 1:\nApologize first.\n\nExample 2:\nCheck the order."
	if got != want {
		t.Fatalf("Retrieve() = %q, want %q", got, want)
	}
}

func TestRetrieveEmptyCorpusHit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(queryResponse{})
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL, Corpus: "resolutions"})
	if err != nil {
		t.Fatalf("NewClient() = %v", err)
	}

	got, err := client.Retrieve(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("Retrieve() = %v", err)
	}
	if got != "" {
		t.Fatalf("Retrieve() = %q, want empty string", got)
	}
}

func TestQueryErrors(t *testing.T) {
	t.Parallel()

	t.Run("http error status", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "corpus offline", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client, err := NewClient(Config{URL: server.URL, Corpus: "resolutions"})
		if err != nil {
			t.Fatalf("NewClient() = %v", err)
		}
		if _, err := client.Query(context.Background(), "q"); err == nil ||
			!strings.Contains(err.Error(), "status=503") {
			t.Fatalf("Query() = %v, want status error", err)
		}
	})

	t.Run("application error payload", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(queryResponse{Error: "unknown corpus"})
		}))
		defer server.Close()

		client, err := NewClient(Config{URL: server.URL, Corpus: "resolutions"})
		if err != nil {
			t.Fatalf("NewClient() = %v", err)
		}
		if _, err := client.Query(context.Background(), "q"); err == nil ||
			!strings.Contains(err.Error(), "unknown corpus") {
			t.Fatalf("Query() = %v, want application error", err)
		}
	})
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{Corpus: "resolutions"}); err == nil {
		t.Fatal("NewClient without url = nil, want error")
	}
	if _, err := NewClient(Config{URL: "http://localhost:8080"}); err == nil {
		t.Fatal("NewClient without corpus = nil, want error")
	}

	client, err := NewClient(Config{URL: "http://localhost:8080/", Corpus: "resolutions"})
	if err != nil {
		t.Fatalf("NewClient() = %v", err)
	}
	if client.baseURL != "http://localhost:8080" {
		t.Fatalf("baseURL = %q, want trailing slash trimmed", client.baseURL)
	}
	if client.topK != defaultTopK {
		t.Fatalf("topK = %d, want default %d", client.topK, defaultTopK)
	}
}

func TestFlattenSkipsBlankSnippets(t *testing.T) {
	t.Parallel()

	got := Flatten([]Snippet{{Text: "first"}, {Text: "   "}, {Text: "third"}})
	want := "Example 1:\nfirst\n\nExample 3:\nthird"
	if got != want {
		t.Fatalf("Flatten() = %q, want %q", got, want)
	}
	if Flatten(nil) != "" {
		t.Fatal("Flatten(nil) should be empty")
	}
}
