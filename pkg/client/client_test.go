package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

const envelope = `{"form":{"formTitle":"Student","formId":"f-1","version":"1","sections":[
  {"sectionId":1,"title":"Basics","fields":[{"fieldId":"name","type":"text","label":"Name","required":true}]}
]}}`

func TestHTTPClientFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get-form" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("rollNumber")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, envelope)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL+"/api/", WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	form, err := c.Fetch(context.Background(), " R-42 ")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotQuery != "R-42" {
		t.Fatalf("expected trimmed roll number in query, got %q", gotQuery)
	}
	if form.ID != "f-1" || len(form.Sections) != 1 || form.Sections[0].ID != "1" {
		t.Fatalf("unexpected form %+v", form)
	}
}

func TestHTTPClientFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Fetch(context.Background(), "R-1"); !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestHTTPClientFetchRejectsInvalidSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"form":{"sections":[{"sectionId":1,"title":"x","fields":[{"fieldId":"a","type":"slider","label":"A"}]}]}}`)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Fetch(context.Background(), "R-1"); err == nil {
		t.Fatalf("expected unknown field type to fail the fetch")
	}
}

func TestHTTPClientLogin(t *testing.T) {
	var got loginRequest
	var method, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		if r.URL.Path != "/create-user" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.Login(context.Background(), "R-9", " Ada "); err != nil {
		t.Fatalf("login: %v", err)
	}
	if method != http.MethodPost || contentType != "application/json" {
		t.Fatalf("unexpected request %s %s", method, contentType)
	}
	if diff := cmp.Diff(loginRequest{RollNumber: "R-9", Name: "Ada"}, got); diff != "" {
		t.Fatalf("login body mismatch (-want +got):\n%s", diff)
	}
	if err := c.Login(context.Background(), "  ", "x"); !errors.Is(err, ErrRollNumberRequired) {
		t.Fatalf("expected ErrRollNumberRequired, got %v", err)
	}
}

func TestNewHTTPClientValidatesBase(t *testing.T) {
	if _, err := NewHTTPClient(""); !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired, got %v", err)
	}
	if _, err := NewHTTPClient("/relative"); err == nil {
		t.Fatalf("expected relative base url to be rejected")
	}
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(envelope), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	form, err := FileFetcher{Path: path}.Fetch(context.Background(), "anyone")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if form.Title != "Student" {
		t.Fatalf("unexpected title %q", form.Title)
	}

	files := fstest.MapFS{"forms/form.yaml": {Data: []byte(`
formTitle: YAML
sections:
  - sectionId: a
    title: A
    fields:
      - fieldId: name
        type: text
        label: Name
`)}}
	form, err = FileFetcher{Path: "forms/form.yaml", Files: files}.Fetch(context.Background(), "anyone")
	if err != nil {
		t.Fatalf("fetch fs: %v", err)
	}
	if form.Title != "YAML" {
		t.Fatalf("unexpected title %q", form.Title)
	}

	if _, err := (FileFetcher{}).Fetch(context.Background(), "x"); !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("expected ErrSourceRequired, got %v", err)
	}
}

func TestAllowAll(t *testing.T) {
	if err := (AllowAll{}).Login(context.Background(), "R-1", ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := (AllowAll{}).Login(context.Background(), "", ""); !errors.Is(err, ErrRollNumberRequired) {
		t.Fatalf("expected ErrRollNumberRequired, got %v", err)
	}
}
