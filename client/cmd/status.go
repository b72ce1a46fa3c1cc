package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netbirdio/netstatus/client/internal/networkmonitor"
	nsStatus "github.com/netbirdio/netstatus/client/status"
)

var (
	jsonFlag bool
	yamlFlag bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "prints the connectivity status of the active network",
	RunE:  statusFunc,
}

func init() {
	statusCmd.Flags().BoolVar(&jsonFlag, "json", false, "display status in JSON format")
	statusCmd.Flags().BoolVar(&yamlFlag, "yaml", false, "display status in YAML format")
	statusCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func statusFunc(cmd *cobra.Command, _ []string) error {
	cmd.SetOut(cmd.OutOrStdout())

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}

	provider, _, _ := newHost(cfg.PollInterval.Duration)
	nm, err := networkmonitor.New(provider, nil, networkmonitor.WithClassifier(classifier))
	if err != nil {
		return err
	}

	overview := nsStatus.ConvertToStatusOutputOverview(nm.Current(), nm.Classifier())

	var out string
	switch {
	case jsonFlag:
		out, err = overview.JSON()
	case yamlFlag:
		out, err = overview.YAML()
	default:
		out = overview.GeneralSummary()
	}
	if err != nil {
		return fmt.Errorf("format status: %w", err)
	}

	cmd.Print(out)
	if jsonFlag {
		cmd.Println()
	}
	return nil
}
