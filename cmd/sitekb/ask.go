package main

import (
	"fmt"

	"github.com/sitekb/sitekb"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer := deps.Pipeline.Answer(deps.Ctx, c.Question, c.TopK, !c.Raw)
	if answer.Err != "" {
		fmt.Fprintf(deps.Stderr, "error: %s\n", answer.Err)
		return sitekb.Errorf(sitekb.EEMPTY, "%s", answer.Err)
	}

	fmt.Fprintln(deps.Stdout, answer.Answer)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for _, source := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "- %s\n", source)
		}
	}
	if answer.Degraded {
		fmt.Fprintln(deps.Stderr, "note: answer generation failed; showing raw retrieved context")
	}
	return nil
}
