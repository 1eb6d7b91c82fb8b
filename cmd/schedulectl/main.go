// Package main is the schedulectl CLI: solve, validate, and rollover
// dispatched into the same engine/rollover packages the HTTP server
// uses, in the cobra subcommand style the pack's kairos CLI follows
// (see internal/cli/session_cmd.go in that repo).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tolga/resident-scheduler/internal/config"
	"github.com/tolga/resident-scheduler/internal/engine"
	"github.com/tolga/resident-scheduler/internal/rollover"
	"github.com/tolga/resident-scheduler/internal/storepg"
	"github.com/tolga/resident-scheduler/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedulectl",
		Short: "Operate the resident scheduling engine from the command line",
	}
	cmd.AddCommand(newSolveCmd(), newValidateCmd(), newRolloverCmd())
	return cmd
}

func openStore() (*storepg.Store, error) {
	cfg := config.Load()
	db, err := storepg.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := storepg.Migrate(db); err != nil {
		return nil, err
	}
	return storepg.New(db, zerolog.Nop()), nil
}

func newSolveCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run a solve for the given year and persist the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, err := openStore()
			if err != nil {
				return err
			}
			src := store.Sources{
				Residents: pg, Requirements: pg, Completions: pg,
				VacationRequests: pg, Cohorts: pg, Config: pg,
			}
			eng := engine.New(src, pg, zerolog.New(os.Stderr))
			result, err := eng.Solve(context.Background(), year)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"status": result.Status, "tallies": result.Tallies})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "programme year to solve")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Re-check the currently persisted schedule for the given year",
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, err := openStore()
			if err != nil {
				return err
			}
			src := store.Sources{
				Residents: pg, Requirements: pg, Completions: pg,
				VacationRequests: pg, Cohorts: pg, Config: pg,
			}
			eng := engine.New(src, pg, zerolog.New(os.Stderr))
			if err := eng.ValidateStored(context.Background(), year, pg); err != nil {
				return err
			}
			fmt.Println("valid")
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "programme year to validate")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newRolloverCmd() *cobra.Command {
	var fromYear, toYear int
	var chiefCoverage, dryRun bool
	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Promote residents into the next programme year",
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, err := openStore()
			if err != nil {
				return err
			}
			src := store.Sources{Residents: pg, Cohorts: pg}
			plan, err := rollover.Run(context.Background(), src, fromYear, toYear, rollover.Options{ChiefCoverage: chiefCoverage})
			if err != nil {
				return err
			}
			if !dryRun {
				if err := pg.SaveRoster(context.Background(), toYear, plan.Residents, plan.Cohorts, plan.CohortDefs); err != nil {
					return err
				}
			}
			return printJSON(plan)
		},
	}
	cmd.Flags().IntVar(&fromYear, "from-year", 0, "year to promote residents from")
	cmd.Flags().IntVar(&toYear, "to-year", 0, "year to promote residents into")
	cmd.Flags().BoolVar(&chiefCoverage, "chief-coverage", false, "keep PGY3/TY residents instead of graduating them")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute the plan without persisting it")
	_ = cmd.MarkFlagRequired("from-year")
	_ = cmd.MarkFlagRequired("to-year")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
