package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

const defaultJobsListLimit = 20

func newJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect prospecting jobs",
	}
	cmd.AddCommand(newJobsListCommand())
	return cmd
}

func newJobsListCommand() *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listJobs(cmd.Context(), cmd.OutOrStdout(), status, limit)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only jobs with this status")
	cmd.Flags().IntVar(&limit, "limit", defaultJobsListLimit, "maximum number of jobs")

	return cmd
}

func listJobs(ctx context.Context, out io.Writer, status string, limit int) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.close(context.WithoutCancel(ctx)) }()

	jobs, err := a.jobs.List(ctx, database.ListJobsParams{Status: status, Limit: limit})
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	total, err := a.jobs.Count(ctx, status)
	if err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}

	renderJobs(out, jobs, total)
	return nil
}

// renderJobs prints jobs newest first with their counters.
func renderJobs(out io.Writer, jobs []*domain.Job, total int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Name", "Type", "Status", "Industries", "Companies", "Contacts", "Errors", "Created"})
	for _, job := range jobs {
		t.AppendRow(table.Row{
			job.ID,
			job.Name,
			job.JobType,
			job.Status,
			strings.Join(job.Industries, ", "),
			job.CompaniesFound,
			job.ContactsFound,
			job.ErrorsCount,
			job.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "Total", total})
	t.Render()
}
