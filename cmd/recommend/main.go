package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"smart_travel/internal/adapters/inventory"
	"smart_travel/internal/adapters/mockinventory"
	"smart_travel/internal/adapters/observability"
	"smart_travel/internal/app"
	"smart_travel/internal/catalog"
	"smart_travel/internal/domain"
	"smart_travel/internal/validation"
)

func main() {
	log.Logger = observability.NewLogger("dev").Level(zerolog.WarnLevel)
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("recommend failed")
		os.Exit(1)
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"o"},
		Value:   "json",
		Usage:   "Output format (json or yaml)",
		Local:   true,
	}
}

// sourceFlags select and tune the candidate source. Each command gets its own
// instances since flags carry parse state.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Uint64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "Seed for the built-in inventory generator",
			Local: true,
		},
		&cli.StringFlag{
			Name:    "inventory-url",
			Usage:   "Query a remote inventory API instead of the built-in generator",
			Sources: cli.EnvVars("INVENTORY_BASE_URL"),
			Local:   true,
		},
		&cli.StringFlag{
			Name:    "inventory-key",
			Usage:   "API key for the remote inventory",
			Sources: cli.EnvVars("INVENTORY_API_KEY"),
			Local:   true,
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: 3,
			Usage: "Destinations evaluated concurrently per search",
			Local: true,
		},
	}
}

func newCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Local: true, Usage: "Single destination (e.g. paris); empty explores the catalog"},
		&cli.StringFlag{Name: "origin", Value: "JFK", Local: true, Usage: "Departure airport code"},
		&cli.StringFlag{Name: "start", Local: true, Usage: "Start date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "end", Local: true, Usage: "End date (YYYY-MM-DD)"},
		&cli.FloatFlag{Name: "budget-min", Local: true, Usage: "Lower budget bound"},
		&cli.FloatFlag{Name: "budget-max", Value: domain.DefaultBudgetMax, Local: true, Usage: "Upper budget bound for the whole trip"},
		&cli.IntFlag{Name: "travelers", Value: 1, Local: true, Usage: "Number of travelers"},
		&cli.StringSliceFlag{Name: "interest", Aliases: []string{"i"}, Local: true, Usage: "Interest tag, repeatable (e.g. -i culture -i food)"},
		&cli.StringFlag{Name: "style", Local: true, Usage: "Travel style (luxury, mid-range or budget)"},
		formatFlag(),
	}
	return &cli.Command{
		Name:  "recommend",
		Usage: "Build ranked travel packages from the command line",
		Flags: append(flags, sourceFlags()...),
		Commands: []*cli.Command{
			batchCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}
			if err := validation.ValidateStruct(c); err != nil {
				return err
			}
			engine, err := engineFromFlags(cmd)
			if err != nil {
				return err
			}
			set, err := engine.Recommend(ctx, c)
			if err != nil {
				return fmt.Errorf("recommend: %w", err)
			}
			return write(cmd.Root().Writer, cmd.String("format"), set)
		},
	}
}

func criteriaFromFlags(cmd *cli.Command) (domain.SearchCriteria, error) {
	if cmd.String("start") == "" || cmd.String("end") == "" {
		return domain.SearchCriteria{}, fmt.Errorf("--start and --end are required")
	}
	start, err := time.Parse(time.DateOnly, cmd.String("start"))
	if err != nil {
		return domain.SearchCriteria{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse(time.DateOnly, cmd.String("end"))
	if err != nil {
		return domain.SearchCriteria{}, fmt.Errorf("invalid --end: %w", err)
	}
	return domain.SearchCriteria{
		Destination: strings.ToLower(strings.TrimSpace(cmd.String("destination"))),
		Origin:      strings.ToUpper(cmd.String("origin")),
		StartDate:   start,
		EndDate:     end,
		BudgetMin:   cmd.Float("budget-min"),
		BudgetMax:   cmd.Float("budget-max"),
		Travelers:   cmd.Int("travelers"),
		Interests:   cmd.StringSlice("interest"),
		TravelStyle: domain.TravelStyle(cmd.String("style")),
	}, nil
}

func engineFromFlags(cmd *cli.Command) (*app.Recommender, error) {
	var src domain.CandidateSource = mockinventory.New(cmd.Uint64("seed"))
	if base := cmd.String("inventory-url"); base != "" {
		client, err := inventory.New(base, cmd.String("inventory-key"), 5)
		if err != nil {
			return nil, err
		}
		src = inventory.NewBreakerSource(client, inventory.DefaultBreakerSettings())
	}
	return app.NewRecommender(src, catalog.Destinations(), app.WithWorkers(cmd.Int("workers"))), nil
}

func write(w io.Writer, format string, v any) error {
	if w == nil {
		w = os.Stdout
	}
	switch strings.ToLower(format) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}
