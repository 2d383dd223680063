package main

import (
	"fmt"

	"github.com/sitekb/sitekb"
	"github.com/sitekb/sitekb/pipeline"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	if c.Reset {
		if err := deps.Store.Reset(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitekb.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "Collection cleared.")
	}

	result, err := deps.Pipeline.Ingest(deps.Ctx, pipeline.IngestOptions{
		BaseURL:          c.URL,
		MaxPages:         c.MaxPages,
		MaxDepth:         c.MaxDepth,
		MaxCharsPerChunk: c.MaxChunkChars,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %d pages into %d chunks (%d embeddings).\n",
		result.PagesCrawled, result.ChunksCreated, result.EmbeddingsCreated)
	for i, url := range result.CrawledURLs {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", i+1, url)
	}
	return nil
}
