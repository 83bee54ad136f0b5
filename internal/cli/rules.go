package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ttscoff/md-fixup/internal/logging"
	"github.com/ttscoff/md-fixup/pkg/normalize"
)

func newRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available normalization rules",
		Long: `List all normalization rules with their numbers, keywords, and whether
they are enabled by default. Rule numbers and keywords are accepted
interchangeably by --skip and --include.`,
		Run: func(_ *cobra.Command, _ []string) {
			logger := logging.NewWriter(os.Stdout, "info")

			logger.Info("available rules")

			for _, rule := range normalize.Catalog() {
				enabled := "yes"
				if !rule.Default {
					enabled = "no"
				}

				logger.Info(rule.Keyword,
					logging.FieldRule, rule.Number,
					logging.FieldEnabled, enabled,
					logging.FieldDescription, rule.Description,
				)
			}
		},
	}

	return cmd
}
