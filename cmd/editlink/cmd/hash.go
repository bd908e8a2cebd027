package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenekit/editlink/pkg/editlink/protocol"
)

var hashCmd = &cobra.Command{
	Use:   "hash NAME...",
	Short: "Print the 32-bit wire keys for component/property names",
	Long: `Print the CRC-32 wire key for each given name.

Component and property names travel as 32-bit hashes on the hot property-edit
path; this command computes the same mapping for debugging captures and
writing runtime-side tables.

Examples:
  editlink hash Transform Scale
  editlink hash renderable`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			fmt.Printf("%-24s 0x%08X\n", name, protocol.HashName(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
