package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/redballoonsecurity/bal/internal/compression"
	"github.com/redballoonsecurity/bal/internal/remote"
)

// loadBlob reads an analysis input from a local path or an "oci://"
// artifact ref, transparently decompressing zstd inputs.
func loadBlob(ctx context.Context, arg string) ([]byte, error) {
	var data []byte
	if ref, ok := strings.CutPrefix(arg, "oci://"); ok {
		fetcher, err := remote.NewFetcher(ref)
		if err != nil {
			return nil, err
		}
		fetcher.SetConcurrency(viper.GetInt("concurrency"))
		data, err = fetcher.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ref, err)
		}
	} else {
		var err error
		data, err = os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
	}
	return compression.Decode(data)
}
