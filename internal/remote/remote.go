// Package remote fetches analysis blobs distributed as OCI artifacts.
//
// Firmware vendors increasingly publish images to OCI registries; a
// Fetcher pulls the artifact for a ref and concatenates its layers into
// the blob handed to a bal context factory. Authentication uses the
// system keychain, like Docker.
package remote

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	ociremote "github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/sourcegraph/conc/pool"
)

// DefaultConcurrency bounds parallel layer downloads.
const DefaultConcurrency = 4

const fetchAttempts = 3

// Fetcher downloads the blob behind one OCI image ref.
type Fetcher struct {
	ref         name.Reference
	concurrency int
}

// NewFetcher creates a fetcher from a standard image ref
// (e.g. "registry.example.com/firmware/lx9:latest").
func NewFetcher(imageRef string) (*Fetcher, error) {
	ref, err := name.ParseReference(imageRef, name.WithDefaultTag("latest"))
	if err != nil {
		return nil, fmt.Errorf("invalid image ref %q: %w", imageRef, err)
	}
	return &Fetcher{ref: ref, concurrency: DefaultConcurrency}, nil
}

// SetConcurrency sets the number of parallel layer downloads.
func (f *Fetcher) SetConcurrency(n int) {
	if n > 0 {
		f.concurrency = n
	}
}

func (f *Fetcher) String() string { return f.ref.String() }

// Fetch downloads every layer of the artifact in parallel and returns
// them concatenated in manifest order.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	img, err := retry(ctx, fetchAttempts, func() (v1.Image, error) {
		return ociremote.Image(f.ref,
			ociremote.WithContext(ctx),
			ociremote.WithAuthFromKeychain(authn.DefaultKeychain))
	})
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", f.ref, err)
	}

	layers, err := img.Layers()
	if err != nil {
		return nil, fmt.Errorf("get layers: %w", err)
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("artifact %s has no layers", f.ref)
	}

	parts := make([][]byte, len(layers))
	p := pool.New().WithMaxGoroutines(f.concurrency).WithContext(ctx).WithCancelOnError()
	for i, layer := range layers {
		p.Go(func(ctx context.Context) error {
			rc, err := layer.Uncompressed()
			if err != nil {
				return fmt.Errorf("open layer %d: %w", i, err)
			}
			data, err := io.ReadAll(rc)
			if cerr := rc.Close(); cerr != nil && err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("read layer %d: %w", i, err)
			}
			parts[i] = data
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, part := range parts {
		total += len(part)
	}
	blob := make([]byte, 0, total)
	for _, part := range parts {
		blob = append(blob, part...)
	}
	return blob, nil
}

func retry[T any](ctx context.Context, maxAttempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for i := range maxAttempts {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < maxAttempts-1 {
			delay := time.Duration(1<<i) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return zero, lastErr
}
