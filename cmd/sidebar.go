package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Shivam0504-hash/rcc-documentation/internal/sidebar"
)

var sidebarFormat string

var sidebarCmd = &cobra.Command{
	Use:   "sidebar",
	Short: "Prints the sidebar tree",
	Long: `The sidebar command prints the sidebar tree the build uses, either the
built-in one or the file named by sidebarFile, in its external shape.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := sidebar.Default()
		if appConfig.SidebarFile != "" {
			loaded, err := sidebar.Load(appConfig.SidebarFile)
			if err != nil {
				return err
			}
			s = loaded
		}
		out, err := sidebar.Marshal(s, sidebarFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	sidebarCmd.Flags().StringVarP(&sidebarFormat, "format", "f", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(sidebarCmd)
}
