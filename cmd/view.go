package cmd

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/pinceau/internal/canvasio"
)

var viewPlain bool

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Render a canvas file to stdout",
	Long: `Render a saved canvas to stdout without starting the editor.

Colored cells come out as ANSI escape sequences when the terminal
supports them. Use --plain for characters only.

Examples:
  # Print a drawing
  pinceau view art.json

  # Pipe it somewhere without escape sequences
  pinceau view art.json --plain | wc -l`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		c, err := canvasio.Load(args[0])
		if err != nil {
			return err
		}
		if viewPlain || termenv.EnvColorProfile() == termenv.Ascii {
			fmt.Println(canvasio.EncodeText(c))
			return nil
		}
		fmt.Print(canvasio.EncodeANSI(c))
		return nil
	},
}

func init() {
	viewCmd.Flags().BoolVar(&viewPlain, "plain", false,
		"characters only, no color escape sequences")
	rootCmd.AddCommand(viewCmd)
}
