package main

import (
	"fmt"

	"github.com/atedres/boldnet-sub000/internal/interfaces/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// editCmd opens the interactive section editor
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit homepage sections interactively",
	Long: `Open a terminal editor over the homepage sections.

Keys:
  enter  edit the selected section
  v      toggle visibility
  K / J  move the section up or down
  d      delete (asks for confirmation with y)
  esc    go back
  q      quit`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	program := tea.NewProgram(tui.NewModel(ctx, s.services.Sections),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}
