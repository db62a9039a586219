package main

import (
	"fmt"

	"github.com/atedres/boldnet-sub000/internal/application/seed"
	"github.com/spf13/cobra"
)

// seedCmd loads a YAML fixture
var seedCmd = &cobra.Command{
	Use:   "seed FIXTURE",
	Short: "Load site content from a YAML fixture",
	Long: `Write the sections, pages, collections and settings described by a
YAML fixture. Records go through the same validation as editor writes.
Static homepage sections that already exist are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixture, err := seed.LoadFixture(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.services.Seeder().Apply(ctx, fixture)
	if err != nil {
		return fmt.Errorf("seed %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"Seeded %d sections, %d pages, %d entities, %d settings (%d skipped)\n",
		report.Sections, report.Pages, report.Entities, report.Settings, report.Skipped)
	return nil
}
