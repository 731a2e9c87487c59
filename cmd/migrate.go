package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.close(context.WithoutCancel(cmd.Context())) }()

			return a.migrate(cmd.Context())
		},
	}
}
