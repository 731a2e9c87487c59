package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
)

// runOptions are the flags of the run command.
type runOptions struct {
	name       string
	jobType    string
	industries []string
	sources    []string
	location   string
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create a job and run it in the foreground",
		Example: `  prospector run --name "Texas HVAC" --industry HVAC --location "Austin, TX"
  prospector run --name refresh --type enrichment --industry Manufacturing`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "job name")
	cmd.Flags().StringVar(&opts.jobType, "type", domain.JobTypeFull, "job type: discovery, enrichment or full")
	cmd.Flags().StringSliceVar(&opts.industries, "industry", nil, "industry to prospect (repeatable)")
	cmd.Flags().StringSliceVar(&opts.sources, "source", nil, "source to search (repeatable, default all)")
	cmd.Flags().StringVar(&opts.location, "location", "", "geographic filter such as \"Austin, TX\"")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runJob(ctx context.Context, out io.Writer, opts *runOptions) error {
	job, err := domain.NewJob(opts.name, opts.jobType, opts.industries, domain.JobOptions{
		Sources:  opts.sources,
		Location: opts.location,
	})
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if closeErr := a.close(closeCtx); closeErr != nil {
			fmt.Fprintf(out, "Warning: %v\n", closeErr)
		}
	}()

	if migrateErr := a.migrate(ctx); migrateErr != nil {
		return migrateErr
	}
	a.withEngine()

	if createErr := a.jobs.Create(ctx, job); createErr != nil {
		return fmt.Errorf("create job: %w", createErr)
	}
	a.log.Info("Running job",
		logger.String("job_id", job.ID),
		logger.String("job_type", job.JobType),
		logger.Strings("industries", job.Industries),
	)

	started := time.Now()
	final, err := a.engine.RunJob(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	renderJobSummary(out, final, time.Since(started))
	if final.Status == domain.JobStatusFailed {
		return fmt.Errorf("job %s failed; see its logs", final.ID)
	}
	return nil
}

// renderJobSummary prints the final counters of a job.
func renderJobSummary(out io.Writer, job *domain.Job, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Job " + job.ID)

	t.AppendRows([]table.Row{
		{"Name", job.Name},
		{"Type", job.JobType},
		{"Status", job.Status},
		{"Industries", strings.Join(job.Industries, ", ")},
		{"URLs", fmt.Sprintf("%d/%d", job.ProcessedURLs, job.TotalURLs)},
		{"Companies", job.CompaniesFound},
		{"Contacts", job.ContactsFound},
		{"Errors", job.ErrorsCount},
		{"Duration", elapsed.Round(time.Second).String()},
	})
	t.Render()
}
