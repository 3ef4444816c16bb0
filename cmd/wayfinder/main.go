// Copyright 2025 Campuskit Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/campuskit/wayfinder"
	"github.com/campuskit/wayfinder/assist"
	"github.com/campuskit/wayfinder/core"
	"github.com/campuskit/wayfinder/search"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "wayfinder",
		Usage: "Campus navigation query resolution engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load building and calendar data from JSON files",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "buildings",
						Usage: "Path to a JSON file with an array of building records",
					},
					&cli.StringFlag{
						Name:  "calendar",
						Usage: "Path to a JSON file with term-keyed calendar events",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Resolve a campus query against the database",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "ai-host",
						Usage:   "OpenAI-compatible service host for fallback answers",
						EnvVars: []string{"WAYFINDER_AI_HOST"},
					},
					&cli.StringFlag{
						Name:    "ai-model",
						Usage:   "Completion model for fallback answers",
						EnvVars: []string{"WAYFINDER_AI_MODEL"},
						Value:   "qwen2.5:3b",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for a fallback answer",
						Value: assist.DefaultTimeout,
					},
				},
			},
			{
				Name:   "agent",
				Usage:  "Run a completion agent against the database",
				Action: agentCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "ai-host",
						Usage:   "OpenAI-compatible service host URL",
						EnvVars: []string{"WAYFINDER_AI_HOST"},
						Value:   "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:    "ai-model",
						Usage:   "Completion model name",
						EnvVars: []string{"WAYFINDER_AI_MODEL"},
						Value:   "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent completions",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	// Optional .env file feeds the flag environment variables
	_ = godotenv.Load()

	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func seedCommand(c *cli.Context) error {
	buildingsPath := c.String("buildings")
	calendarPath := c.String("calendar")
	if buildingsPath == "" && calendarPath == "" {
		return fmt.Errorf("nothing to seed: provide --buildings and/or --calendar")
	}

	db, err := wayfinder.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if buildingsPath != "" {
		data, err := os.ReadFile(buildingsPath)
		if err != nil {
			return fmt.Errorf("failed to read buildings file: %w", err)
		}
		var buildings []*core.Building
		if err := json.Unmarshal(data, &buildings); err != nil {
			return fmt.Errorf("failed to parse buildings file: %w", err)
		}

		stored, err := db.BuildingRepository().PutBuildings(c.Context, buildings...)
		if err != nil {
			return fmt.Errorf("failed to store buildings: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Stored %d buildings\n", len(stored))
	}

	if calendarPath != "" {
		data, err := os.ReadFile(calendarPath)
		if err != nil {
			return fmt.Errorf("failed to read calendar file: %w", err)
		}
		var calendar core.Calendar
		if err := json.Unmarshal(data, &calendar); err != nil {
			return fmt.Errorf("failed to parse calendar file: %w", err)
		}

		if err := db.CalendarRepository().ReplaceCalendar(c.Context, calendar); err != nil {
			return fmt.Errorf("failed to store calendar: %w", err)
		}
		count := 0
		for _, events := range calendar {
			count += len(events)
		}
		fmt.Fprintf(os.Stderr, "Stored %d calendar events across %d terms\n", count, len(calendar))
	}

	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	opts := []wayfinder.DatabaseOption{
		wayfinder.WithAssistTimeout(c.Duration("timeout")),
	}
	if host := c.String("ai-host"); host != "" {
		opts = append(opts, wayfinder.WithAssistConfig(assist.NewConfig(
			assist.WithHost(host),
			assist.WithModel(c.String("ai-model")),
		)))
	}

	db, err := wayfinder.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	resolver, err := db.NewResolver()
	if err != nil {
		return fmt.Errorf("failed to create resolver: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Without an AI host only the stored collections can answer; fallback
	// questions get the fixed degrade message after the timeout, so run an
	// in-process agent when a host was given. The agent's backlog re-scan
	// covers requests written before its store watch attaches.
	if c.String("ai-host") != "" {
		agent, err := db.NewAgent()
		if err != nil {
			return fmt.Errorf("failed to create agent: %w", err)
		}
		go func() {
			if err := agent.Run(ctx); err != nil {
				slog.Error("agent stopped", "err", err)
			}
		}()
	}

	results := resolver.ResolveWithMonitor(ctx, query, logMonitor{})
	fmt.Printf("Found %d results\n", len(results))
	for i, result := range results {
		fmt.Printf("%d: %s [%s]", i, result.Name, result.ID)
		if result.LocationQuery {
			fmt.Print(" (location query)")
		}
		fmt.Println()
		if result.RelevantInfo != "" {
			fmt.Println(result.RelevantInfo)
		}
	}
	return nil
}

// logMonitor traces resolution stages at debug level.
type logMonitor struct{}

var _ search.ResolveMonitor = logMonitor{}

func (logMonitor) Start(query string) {
	slog.Debug("resolving", "query", query)
}

func (logMonitor) AfterAcademicLookup(events []core.CalendarEvent) {
	slog.Debug("academic tier done", "hits", len(events))
}

func (logMonitor) Finish(results []core.SearchResult) {
	slog.Debug("resolution finished", "results", len(results))
}

func agentCommand(c *cli.Context) error {
	db, err := wayfinder.NewDatabase(c.String("db"),
		wayfinder.WithAssistConfig(assist.NewConfig(
			assist.WithHost(c.String("ai-host")),
			assist.WithModel(c.String("ai-model")),
		)))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var agentOpts []assist.AgentOption
	if size := c.Int("pool-size"); size > 0 {
		agentOpts = append(agentOpts, assist.WithPoolSize(size))
	}

	agent, err := db.NewAgent(agentOpts...)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("agent running", "db", c.String("db"), "host", c.String("ai-host"), "model", c.String("ai-model"))
	return agent.Run(ctx)
}
