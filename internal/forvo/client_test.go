package forvo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestPronunciation(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		fmt.Fprint(w, `{"items": [{"pathmp3": ""}, {"pathmp3": "https://audio.example/hund.mp3"}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", time.Second)
	audio, err := c.Pronunciation(context.Background(), "Hund")
	if err != nil {
		t.Fatalf("Pronunciation failed: %v", err)
	}
	if audio != "https://audio.example/hund.mp3" {
		t.Errorf("Expected first non-empty candidate, got %q", audio)
	}
	if !strings.Contains(gotPath, "/key/testkey/") || !strings.Contains(gotPath, "/word/Hund/") {
		t.Errorf("Unexpected request path %q", gotPath)
	}
	if !strings.Contains(gotPath, "language/de") || !strings.Contains(gotPath, "country=DEU") {
		t.Errorf("Expected language and country filter in %q", gotPath)
	}
}

func TestPronunciationNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", time.Second)
	audio, err := c.Pronunciation(context.Background(), "Hund")
	if err != nil {
		t.Fatalf("Pronunciation failed: %v", err)
	}
	if audio != "" {
		t.Errorf("Expected empty result, got %q", audio)
	}
}

func TestPronunciationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", time.Second)
	if _, err := c.Pronunciation(context.Background(), "Hund"); err == nil {
		t.Fatal("Expected error on 500 response")
	}
}

func TestPronunciationMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", time.Second)
	if _, err := c.Pronunciation(context.Background(), "Hund"); err == nil {
		t.Fatal("Expected error on malformed response")
	}
}

func TestPronunciationTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(srv.URL, "testkey", 50*time.Millisecond)
	start := time.Now()
	_, err := c.Pronunciation(context.Background(), "Hund")
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Lookup blocked for %v, expected it bounded by the client timeout", elapsed)
	}
}
