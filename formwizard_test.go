package formwizard_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
)

func studentFetcher(t *testing.T) client.Fetcher {
	t.Helper()
	form := testsupport.StudentForm(t)
	return client.FetcherFunc(func(context.Context, string) (schema.Form, error) {
		return form, nil
	})
}

func TestPreviewRendersSection(t *testing.T) {
	out, err := formwizard.Preview(context.Background(), studentFetcher(t), 2, "vanilla")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "Preferences") {
		t.Fatalf("expected section 2 title in output")
	}
	if strings.Contains(html, "<style>") {
		t.Fatalf("styles should be opt-in")
	}
}

func TestPreviewFragmentWithStyles(t *testing.T) {
	out, err := formwizard.Preview(context.Background(), studentFetcher(t), 1, "vanilla",
		formwizard.WithDefaultStyles(true),
		formwizard.WithRenderOptions(formwizard.RenderOptions{Fragment: true}),
	)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(out)), "<form") {
		t.Fatalf("expected a bare form fragment, got:\n%s", out)
	}
}

func TestPreviewTextRenderer(t *testing.T) {
	out, err := formwizard.Preview(context.Background(), studentFetcher(t), 1, "tui")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(string(out), "Personal Information (1/2)") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestPreviewErrors(t *testing.T) {
	ctx := context.Background()

	_, err := formwizard.Preview(ctx, studentFetcher(t), 0, "vanilla")
	if !errors.Is(err, formwizard.ErrSectionOutOfRange) {
		t.Fatalf("expected ErrSectionOutOfRange, got %v", err)
	}

	_, err = formwizard.Preview(ctx, studentFetcher(t), 1, "pdf")
	if err == nil || !strings.Contains(err.Error(), "available: tui, vanilla") {
		t.Fatalf("expected renderer list in error, got %v", err)
	}

	boom := errors.New("boom")
	failing := client.FetcherFunc(func(context.Context, string) (schema.Form, error) {
		return schema.Form{}, boom
	})
	if _, err := formwizard.Preview(ctx, failing, 1, "vanilla"); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestPreviewCustomRegistry(t *testing.T) {
	html, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla.New: %v", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)

	_, err = formwizard.Preview(context.Background(), studentFetcher(t), 1, "tui", formwizard.WithRegistry(registry))
	if err == nil || !strings.Contains(err.Error(), "available: vanilla") {
		t.Fatalf("expected custom registry to be used, got %v", err)
	}
}

func TestEmbeddedTemplatesAndAssets(t *testing.T) {
	if _, err := fs.ReadFile(formwizard.EmbeddedTemplates(), "templates/section.tmpl"); err != nil {
		t.Fatalf("section template not embedded: %v", err)
	}
	data, err := fs.ReadFile(formwizard.EmbeddedAssets(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("stylesheet not embedded: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("stylesheet is empty")
	}
}
