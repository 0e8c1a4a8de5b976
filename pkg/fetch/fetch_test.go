package fetch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title> Test Page </title>
			<style>body { color: red }</style></head>
			<body><script>var hidden = "secret";</script>
			<h1>Hello</h1><p>World   of	text</p></body></html>`))
	}))
	defer srv.Close()

	info, err := NewClient().Page(srv.URL + "/some/path")
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "Test Page" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.Path != "/some/path" {
		t.Fatalf("path = %q", info.Path)
	}
	if !strings.Contains(info.Text, "Hello World of text") {
		t.Fatalf("text = %q", info.Text)
	}
	if strings.Contains(info.Text, "secret") || strings.Contains(info.Text, "color") {
		t.Fatalf("script/style leaked into text: %q", info.Text)
	}
}

func TestPageRejectsNonHTTP(t *testing.T) {
	if _, err := NewClient().Page("ftp://example.com/x"); err == nil {
		t.Fatal("ftp URL accepted")
	}
}

func TestPageErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewClient().Page(srv.URL); err == nil {
		t.Fatal("404 accepted")
	}
}
