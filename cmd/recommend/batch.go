package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"

	"smart_travel/internal/domain"
	"smart_travel/internal/validation"
)

// batchEntry is one named search in a batch file.
type batchEntry struct {
	Name                  string `yaml:"name"`
	domain.SearchCriteria `yaml:",inline"`
}

type batchResult struct {
	Name  string                    `json:"name" yaml:"name"`
	Set   *domain.RecommendationSet `json:"result,omitempty" yaml:"result,omitempty"`
	Error string                    `json:"error,omitempty" yaml:"error,omitempty"`
}

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Run every search listed in a YAML file",
		ArgsUsage: "<file.yaml>",
		Flags: append([]cli.Flag{
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Value: 2, Usage: "Searches run at once"},
			formatFlag(),
		}, sourceFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("batch file is required")
			}
			entries, err := loadBatch(path)
			if err != nil {
				return err
			}
			engine, err := engineFromFlags(cmd)
			if err != nil {
				return err
			}
			results, err := runBatch(ctx, engine, entries, cmd.Int("parallel"))
			if err != nil {
				return err
			}
			return write(cmd.Root().Writer, cmd.String("format"), results)
		},
	}
}

func loadBatch(path string) ([]batchEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	var entries []batchEntry
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse batch file %q: %w", path, err)
	}
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			e.Name = fmt.Sprintf("search-%d", i+1)
		}
		if e.Origin == "" {
			e.Origin = "JFK"
		}
		if e.Travelers == 0 {
			e.Travelers = 1
		}
		if e.BudgetMax == 0 {
			e.BudgetMax = domain.DefaultBudgetMax
		}
	}
	return entries, nil
}

type recommender interface {
	Recommend(ctx context.Context, c domain.SearchCriteria) (domain.RecommendationSet, error)
}

// runBatch keeps results in file order. A failing entry records its error
// and does not stop the others.
func runBatch(ctx context.Context, engine recommender, entries []batchEntry, parallel int) ([]batchResult, error) {
	if parallel < 1 {
		parallel = 1
	}
	results := make([]batchResult, len(entries))
	sem := semaphore.NewWeighted(int64(parallel))
	var wg sync.WaitGroup

	for i, e := range entries {
		results[i].Name = e.Name

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("batch interrupted: %w", err)
		}

		wg.Add(1)
		go func(i int, e batchEntry) {
			defer wg.Done()
			defer sem.Release(1)

			if err := validation.ValidateStruct(e.SearchCriteria); err != nil {
				results[i].Error = err.Error()
				return
			}
			set, err := engine.Recommend(ctx, e.SearchCriteria)
			if err != nil {
				log.Warn().Str("name", e.Name).Err(err).Msg("batch search failed")
				results[i].Error = err.Error()
				return
			}
			results[i].Set = &set
		}(i, e)
	}

	wg.Wait()
	return results, nil
}
