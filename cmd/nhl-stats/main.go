package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/james-henry-git/nhl-stats-tracker/internal/app"
	"github.com/james-henry-git/nhl-stats-tracker/internal/config"
	"github.com/james-henry-git/nhl-stats-tracker/internal/observability"
	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
	"github.com/james-henry-git/nhl-stats-tracker/internal/scheduler"
	"github.com/james-henry-git/nhl-stats-tracker/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

var seasonPattern = regexp.MustCompile(`^\d{8}$`)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownUptrace(flushCtx); err != nil {
			logger.Warn("uptrace shutdown", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Warn("pyroscope shutdown", "error", err)
		}
	}()

	command := strings.ToLower(strings.TrimSpace(os.Args[1]))
	if command == "init" {
		// Schema setup does not need the full service graph.
		if err := runMigrations(cfg, logger); err != nil {
			logger.Error("apply migrations", "error", err)
			os.Exit(1)
		}
		return
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}()

	if err := dispatch(ctx, application, command, os.Args[2:]); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted")
			return
		}
		logger.Error("command failed", "command", command, "error", err)
		_ = application.Close()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, application *app.Application, command string, args []string) error {
	switch command {
	case "fetch-teams":
		result, err := application.Sync.SyncTeams(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("teams synced: %d inserted, %d updated\n", result.Inserted, result.Updated)
		return nil

	case "fetch-roster":
		code, season, err := parseTeamArgs("fetch-roster", args)
		if err != nil {
			return err
		}
		result, err := application.Sync.SyncRoster(ctx, code, season)
		if err != nil {
			return err
		}
		fmt.Printf("roster synced for %s: %d inserted, %d updated\n", code, result.Inserted, result.Updated)
		return nil

	case "fetch-stats":
		code, season, err := parseTeamArgs("fetch-stats", args)
		if err != nil {
			return err
		}
		result, err := application.Sync.SyncTeamStats(ctx, code, season)
		if err != nil {
			return err
		}
		fmt.Printf("team stats synced for %s: %d inserted, %d updated\n", code, result.Inserted, result.Updated)
		return nil

	case "fetch-all":
		season, err := parseSeasonArgs("fetch-all", args)
		if err != nil {
			return err
		}
		report, err := application.Sync.SyncAll(ctx, season)
		if err != nil {
			return err
		}
		printReport(report)
		return nil

	case "stats":
		summary, err := application.Summary.Summary(ctx)
		if err != nil {
			return err
		}
		fmt.Print(application.Summary.Render(summary))
		return nil

	case "schedule":
		return runSchedule(ctx, application)

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runSchedule(ctx context.Context, application *app.Application) error {
	runner := scheduler.New(
		application.Config.UpdateInterval,
		application.Config.RunAtStart,
		func(ctx context.Context) error {
			report, err := application.Sync.SyncAll(ctx, "")
			if err != nil {
				return err
			}
			application.Logger.InfoContext(ctx, "scheduled run finished",
				"season", report.Season,
				"teams", report.Teams.Total(),
				"players", report.Players.Total(),
				"failures", len(report.Failures),
			)
			return nil
		},
		application.Logger,
	)

	return runner.Start(ctx)
}

func printReport(report usecase.RunReport) {
	fmt.Printf("season %s: teams %d/%d, players %d/%d, team stats %d/%d, player stats %d/%d (%.1fs)\n",
		report.Season,
		report.Teams.Inserted, report.Teams.Total(),
		report.Players.Inserted, report.Players.Total(),
		report.TeamStats.Inserted, report.TeamStats.Total(),
		report.PlayerStats.Inserted, report.PlayerStats.Total(),
		report.Duration.Seconds(),
	)
	for _, failure := range report.Failures {
		fmt.Printf("  partial failure: %s\n", failure)
	}
}

func parseTeamArgs(command string, args []string) (code, season string, err error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	seasonFlag := fs.String("season", "", "season id, e.g. 20252026")
	if err := fs.Parse(args); err != nil {
		return "", "", err
	}
	if fs.NArg() != 1 {
		return "", "", fmt.Errorf("%s requires exactly one team code argument", command)
	}
	season, err = validateSeason(*seasonFlag)
	if err != nil {
		return "", "", err
	}

	return strings.ToUpper(strings.TrimSpace(fs.Arg(0))), season, nil
}

func parseSeasonArgs(command string, args []string) (string, error) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	seasonFlag := fs.String("season", "", "season id, e.g. 20252026")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 0 {
		return "", fmt.Errorf("%s takes no positional arguments", command)
	}

	return validateSeason(*seasonFlag)
}

func validateSeason(raw string) (string, error) {
	season := strings.TrimSpace(raw)
	if season == "" {
		return "", nil
	}
	if !seasonPattern.MatchString(season) {
		return "", fmt.Errorf("invalid season %q: expected 8 digits, e.g. 20252026", season)
	}

	return season, nil
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n", name)
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  init                            apply database migrations")
	fmt.Fprintln(os.Stderr, "  fetch-teams                     sync the league's teams")
	fmt.Fprintln(os.Stderr, "  fetch-roster <code> [--season]  sync one team's roster")
	fmt.Fprintln(os.Stderr, "  fetch-stats <code> [--season]   sync one team's season record")
	fmt.Fprintln(os.Stderr, "  fetch-all [--season]            full sync of teams, rosters, and stats")
	fmt.Fprintln(os.Stderr, "  stats                           print a database summary")
	fmt.Fprintln(os.Stderr, "  schedule                        run fetch-all on a fixed cadence")
}
