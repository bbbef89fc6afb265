// batch.go parses many independent event texts concurrently.
package asstext

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParseAll parses texts with at most workers goroutines (0 or less means one
// per text). Results are in input order. The only error is ctx's error when
// it is cancelled before all texts are parsed.
func ParseAll(ctx context.Context, texts []string, strict bool, workers int) ([]*ParseResult, error) {
	results := make([]*ParseResult, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Parse(text, strict)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
