package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hireline/assessrec/internal/transport/gemini"
	"github.com/hireline/assessrec/internal/transport/jobpage"
	recommenduc "github.com/hireline/assessrec/internal/usecase/recommend"
)

var queryIsURL bool

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a one-shot recommendation and print the results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context(), args[0])
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryIsURL, "url", false, "treat the query as a job listing URL")
}

func runQuery(ctx context.Context, text string) error {
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	extractor := jobpage.NewExtractor(
		time.Duration(app.cfg.Scraper.TimeoutSec)*time.Second, app.logger,
	)

	var generator recommenduc.Generator = disabledGenerator{}
	if app.cfg.Generation.APIKey != "" {
		generator, err = gemini.NewGenerator(
			ctx, app.cfg.Generation.APIKey, app.cfg.Generation.Model,
			time.Duration(app.cfg.Generation.TimeoutSec)*time.Second, app.logger,
		)
		if err != nil {
			return fmt.Errorf("create generator: %w", err)
		}
	}

	svc := recommenduc.New(app.retrieval, extractor, generator, app.logger)
	resp := svc.Recommend(ctx, text, queryIsURL, recommenduc.DefaultMaxResults)

	fmt.Print(formatResponse(resp))
	return nil
}

// formatResponse renders a recommendation as readable terminal output.
func formatResponse(resp recommenduc.Response) string {
	var b strings.Builder

	if resp.JobDescriptionURL != "" {
		fmt.Fprintf(&b, "Job Description URL: %s\n\n", resp.JobDescriptionURL)
		fmt.Fprintf(&b, "Generated Search Query: %q\n\n", resp.SearchQuery)
	} else {
		fmt.Fprintf(&b, "Search Query: %q\n\n", resp.SearchQuery)
	}

	b.WriteString("Recommended Assessments:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")

	if len(resp.Results) == 0 {
		b.WriteString("No matching assessments found.\n")
		return b.String()
	}

	for i, r := range resp.Results {
		fmt.Fprintf(&b, "Assessment %d:\n", i+1)
		fmt.Fprintf(&b, "Name: %s\n", r.Name)
		fmt.Fprintf(&b, "Duration: %g minutes\n", r.Duration)

		testTypes := "N/A"
		if len(r.TestTypes) > 0 {
			testTypes = strings.Join(r.TestTypes, ", ")
		}
		fmt.Fprintf(&b, "Test types: %s\n", testTypes)
		fmt.Fprintf(&b, "URL: %s\n", r.URL)

		description := r.Description
		if runes := []rune(description); len(runes) > 200 {
			description = string(runes[:200])
		}
		fmt.Fprintf(&b, "Description: %s...\n\n", description)
	}

	return b.String()
}
