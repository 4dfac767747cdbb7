package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/pinceau/internal/canvasio"
	"github.com/zjrosen/pinceau/internal/config"
	"github.com/zjrosen/pinceau/internal/store"
)

var pruneKeep int

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect the snapshots the editor records",
	Long: `Inspect the snapshots the editor records when a canvas is saved or
abandoned with unsaved changes.

Snapshots are pruned automatically on save; these commands are for
digging out work the files on disk no longer hold.

Examples:
  # See what is stored
  pinceau snapshots list

  # Recover a snapshot into a file
  pinceau snapshots show 3f81c3e2-... > recovered.ans

  # Trim the store by hand
  pinceau snapshots prune --keep 5`,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		snapshots, err := db.Snapshots().List()
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			fmt.Println("No snapshots recorded yet.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(func(_, _ int) lipgloss.Style {
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers("ID", "NAME", "SIZE", "CREATED")
		for _, s := range snapshots {
			t.Row(s.ID, s.Name,
				fmt.Sprintf("%dx%d", s.Width, s.Height),
				s.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println(t)
		return nil
	},
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Render a snapshot to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		_, c, err := db.Snapshots().Load(args[0])
		if err != nil {
			return err
		}
		if termenv.EnvColorProfile() == termenv.Ascii {
			fmt.Println(canvasio.EncodeText(c))
			return nil
		}
		fmt.Print(canvasio.EncodeANSI(c))
		return nil
	},
}

var snapshotsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := db.Snapshots().Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest snapshots",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		removed, err := db.Snapshots().Prune(pruneKeep)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d snapshots, kept the newest %d.\n", removed, pruneKeep)
		return nil
	},
}

// openStore connects to the snapshot database the editor writes to.
func openStore() (*store.DB, error) {
	path, err := store.DefaultPath()
	if err != nil {
		return nil, err
	}
	return store.NewDB(path)
}

func init() {
	snapshotsPruneCmd.Flags().IntVar(&pruneKeep, "keep", config.DefaultAutosnapshotKeep,
		"newest snapshots to keep")
	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsShowCmd, snapshotsRmCmd, snapshotsPruneCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
