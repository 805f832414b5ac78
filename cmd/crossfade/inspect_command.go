package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"crossfade/internal/catalog"
	"crossfade/internal/config"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var dbFlag string
	var sampleFlag int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show users, libraries, and annotation tallies from the Navidrome database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dbPath := cfg.Paths.NavidromeDB
			if path := strings.TrimSpace(dbFlag); path != "" {
				dbPath, err = config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve database path: %w", err)
				}
			}

			store, err := catalog.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			runCtx := cmd.Context()

			fileCount, err := store.MediaFileCount(runCtx)
			if err != nil {
				return fmt.Errorf("count media files: %w", err)
			}
			fmt.Fprintf(out, "Database: %s (%d media files)\n\n", store.Path(), fileCount)

			users, err := store.Users(runCtx)
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			userRows := make([][]string, 0, len(users))
			for _, user := range users {
				userRows = append(userRows, []string{user.ID, user.Name, yesNo(user.IsAdmin)})
			}
			fmt.Fprintln(out, renderTable([]string{"User ID", "Name", "Admin"}, userRows))

			libraries, err := store.Libraries(runCtx)
			switch {
			case errors.Is(err, catalog.ErrNoLibraries):
				fmt.Fprintln(out, "Library table: not present (single-library schema)")
			case err != nil:
				return fmt.Errorf("list libraries: %w", err)
			default:
				libRows := make([][]string, 0, len(libraries))
				for _, lib := range libraries {
					libRows = append(libRows, []string{strconv.Itoa(lib.ID), lib.Name, lib.Path})
				}
				fmt.Fprintln(out, renderTable([]string{"Library", "Name", "Path"}, libRows))
			}

			tallies, err := store.MediaFileAnnotationTallies(runCtx)
			if err != nil {
				return fmt.Errorf("tally annotations: %w", err)
			}
			hasRatedAt, err := store.HasRatedAt(runCtx)
			if err != nil {
				return fmt.Errorf("probe rated_at: %w", err)
			}
			fmt.Fprintf(out, "Track annotations: %d rows (%d with plays, %d with ratings)\n", tallies.Rows, tallies.WithPlays, tallies.WithRating)
			fmt.Fprintf(out, "rated_at column: %s\n", yesNo(hasRatedAt))

			annotationColumns, err := store.TableColumns(runCtx, "annotation")
			if err != nil {
				return fmt.Errorf("annotation columns: %w", err)
			}
			fmt.Fprintf(out, "annotation columns: %s\n", strings.Join(annotationColumns, ", "))
			mediaFileColumns, err := store.TableColumns(runCtx, "media_file")
			if err != nil {
				return fmt.Errorf("media_file columns: %w", err)
			}
			fmt.Fprintf(out, "media_file columns: %s\n", strings.Join(mediaFileColumns, ", "))

			if sampleFlag > 0 {
				samples, err := store.SamplePaths(runCtx, sampleFlag)
				if err != nil {
					return fmt.Errorf("sample paths: %w", err)
				}
				if len(samples) > 0 {
					fmt.Fprintln(out, "\nSample paths:")
					for _, sample := range samples {
						fmt.Fprintf(out, "  %s\n", sample)
					}
				}
			}

			properties, err := store.Properties(runCtx)
			if err != nil {
				return fmt.Errorf("list properties: %w", err)
			}
			if len(properties) > 0 {
				fmt.Fprintln(out)
				propRows := make([][]string, 0, len(properties))
				for _, prop := range properties {
					propRows = append(propRows, []string{prop.ID, prop.Value})
				}
				fmt.Fprintln(out, renderTable([]string{"Property", "Value"}, propRows))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dbFlag, "db", "", "Path to the Navidrome database")
	cmd.Flags().IntVar(&sampleFlag, "sample", 5, "Media file paths to sample")

	return cmd
}
