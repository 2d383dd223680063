package main

import (
	"fmt"

	"github.com/sitekb/sitekb"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Store.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitekb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Collection: %s\n", stats.CollectionName)
	fmt.Fprintf(deps.Stdout, "Documents:  %d\n", stats.TotalDocuments)
	for k, v := range stats.Metadata {
		fmt.Fprintf(deps.Stdout, "%s: %s\n", k, v)
	}
	return nil
}
