package cmd

import (
	"github.com/spf13/cobra"

	"github.com/netbirdio/netstatus/version"
)

var (
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "prints Netstatus version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.Println(version.NetstatusVersion())
		},
	}
)
