package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fhuszti/tmpfiles-ms-go/internal/config"
	"github.com/fhuszti/tmpfiles-ms-go/internal/format"
	"github.com/fhuszti/tmpfiles-ms-go/internal/metastore"
	"github.com/fhuszti/tmpfiles-ms-go/internal/model"
)

// StagerLoader builds the staging client on demand, so that read-only
// commands work without MinIO or Redis.
type StagerLoader func(cfg *config.Settings) (*Stager, func(), error)

// NewRootCommand returns the filectl command tree.
func NewRootCommand(ctx context.Context, load StagerLoader) *cobra.Command {
	var cfg *config.Settings

	rootCmd := &cobra.Command{
		Use:          "filectl",
		Short:        "Operate a tmpfiles store.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}
	rootCmd.SetContext(ctx)

	settings := func() *config.Settings { return cfg }
	rootCmd.AddCommand(newStageCommand(settings, load))
	rootCmd.AddCommand(newStatsCommand(settings))
	rootCmd.AddCommand(newListCommand(settings, time.Now))

	return rootCmd
}

func newStatsCommand(settings func() *config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the aggregate size of the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := settings()
			entries := metastore.NewJSONStore(cfg.UploadDir).Load(cmd.Context())

			var total int64
			for _, d := range entries {
				total += d.SizeBytes
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "files:      %d\n", len(entries))
			fmt.Fprintf(out, "total size: %s (%.2f MB)\n", format.Size(total), format.SizeMB(total))
			fmt.Fprintf(out, "ttl:        %dh\n", cfg.ExpiryHours)
			return nil
		},
	}
}

func newListCommand(settings func() *config.Settings, now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored files and when they expire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := metastore.NewJSONStore(settings().UploadDir).Load(cmd.Context())

			list := make([]model.FileDescriptor, 0, len(entries))
			for _, d := range entries {
				list = append(list, d)
			}
			sort.Slice(list, func(i, j int) bool {
				if list[i].CreatedAt.Equal(list[j].CreatedAt) {
					return list[i].StoredFilename < list[j].StoredFilename
				}
				return list[i].CreatedAt.Before(list[j].CreatedAt)
			})

			return writeList(cmd.OutOrStdout(), list, now())
		},
	}
}

func writeList(w io.Writer, list []model.FileDescriptor, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILE\tSIZE\tEXPIRES IN\tTITLE")
	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.StoredFilename, format.Size(d.SizeBytes), expiresIn(d, now), d.DisplayTitle)
	}
	return tw.Flush()
}

func expiresIn(d model.FileDescriptor, now time.Time) string {
	if d.Expired(now) {
		return "expired"
	}
	return format.Duration(int(d.ExpiresAt.Sub(now).Seconds()))
}

func newStageCommand(settings func() *config.Settings, load StagerLoader) *cobra.Command {
	var title, sourceID string

	cmd := &cobra.Command{
		Use:   "stage <path>",
		Short: "Upload a file to the staging bucket and queue its ingestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stager, release, err := load(settings())
			if err != nil {
				return err
			}
			defer release()

			in, err := stager.Stage(cmd.Context(), args[0], title, sourceID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s as %s\n", in.OriginalFilename, in.ObjectKey)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "display title shown next to the file")
	cmd.Flags().StringVar(&sourceID, "source-id", "", "identifier of the file's origin")

	return cmd
}
