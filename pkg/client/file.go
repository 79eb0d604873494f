package client

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// FileFetcher serves one schema document for every roll number. It reads from
// the local disk, or from files when set.
type FileFetcher struct {
	Path  string
	Files fs.FS
}

var _ Fetcher = FileFetcher{}

// Fetch implements Fetcher. The document is re-read on each call so edits show
// up on the next login.
func (f FileFetcher) Fetch(ctx context.Context, rollNumber string) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}
	if f.Path == "" {
		return schema.Form{}, ErrSourceRequired
	}

	var (
		data []byte
		err  error
	)
	if f.Files != nil {
		data, err = fs.ReadFile(f.Files, f.Path)
	} else {
		data, err = os.ReadFile(f.Path)
	}
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: read schema: %w", err)
	}

	form, err := schema.Decode(data, schema.FormatFromPath(f.Path))
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: decode schema %s: %w", f.Path, err)
	}
	return form, nil
}

// FetcherForSource picks an HTTP fetcher for URL sources that serve one
// document, and a FileFetcher otherwise.
func FetcherForSource(src schema.Source, options ...HTTPOption) (Fetcher, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	switch src.Kind() {
	case schema.SourceKindFile:
		return FileFetcher{Path: src.Location()}, nil
	case schema.SourceKindURL:
		return documentFetcher{location: src.Location(), options: options}, nil
	default:
		return nil, fmt.Errorf("client: unsupported source kind %q", src.Kind())
	}
}

type documentFetcher struct {
	location string
	options  []HTTPOption
}

func (d documentFetcher) Fetch(ctx context.Context, _ string) (schema.Form, error) {
	h := &HTTPClient{http: &http.Client{}}
	for _, opt := range d.options {
		if opt != nil {
			opt(h)
		}
	}
	data, err := h.do(ctx, http.MethodGet, d.location, nil)
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: fetch schema document: %w", err)
	}
	form, err := schema.Decode(data, schema.FormatFromPath(d.location))
	if err != nil {
		return schema.Form{}, fmt.Errorf("client: decode schema document: %w", err)
	}
	return form, nil
}
