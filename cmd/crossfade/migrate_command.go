package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"crossfade/internal/catalog"
	"crossfade/internal/config"
	"crossfade/internal/fileutil"
	"crossfade/internal/library"
	"crossfade/internal/logging"
	"crossfade/internal/migrate"
	"crossfade/internal/pathnorm"
	"crossfade/internal/preflight"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var (
		libraryFlag  string
		dbFlag       string
		userFlag     string
		replaceFlag  bool
		dryRunFlag   bool
		yesFlag      bool
		verboseFlag  bool
		sampleFlag   int
		playlistFlag bool
		noBackupFlag bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Merge iTunes play history into the Navidrome database",
		Long: `Parse an iTunes Library.xml export, match its tracks against the
Navidrome catalog by file path, and merge play counts, ratings, and
last-played dates into the target user's listening history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCfg := *cfg
			if path := strings.TrimSpace(libraryFlag); path != "" {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve library path: %w", err)
				}
				runCfg.Paths.LibraryXML = expanded
			}
			if path := strings.TrimSpace(dbFlag); path != "" {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve database path: %w", err)
				}
				runCfg.Paths.NavidromeDB = expanded
			}
			if user := strings.TrimSpace(userFlag); user != "" {
				runCfg.Migration.UserID = user
			}
			if runCfg.Migration.UserID == "" {
				return fmt.Errorf("no target user; set migration.user_id in the config or pass --user")
			}

			modeValue := runCfg.Migration.Mode
			if replaceFlag {
				modeValue = "replace"
			}
			mode, err := migrate.ParseMode(modeValue)
			if err != nil {
				return err
			}

			if verboseFlag {
				runCfg.Logging.Level = "debug"
			}
			logger, err := logging.NewFromConfig(&runCfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			out := cmd.OutOrStdout()
			runCtx := cmd.Context()

			checks := preflight.RunAll(runCtx, &runCfg)
			rows := make([][]string, 0, len(checks))
			for _, check := range checks {
				status := "ok"
				if !check.Passed {
					status = "failed"
				}
				rows = append(rows, []string{check.Name, status, check.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))
			if preflight.Failed(checks) {
				return fmt.Errorf("preflight checks failed; fix the issues above and retry")
			}

			lib, err := library.Parse(runCfg.Paths.LibraryXML)
			if err != nil {
				return err
			}

			store, err := catalog.Open(runCfg.Paths.NavidromeDB)
			if err != nil {
				return err
			}
			defer store.Close()

			fileCount, err := store.MediaFileCount(runCtx)
			if err != nil {
				return fmt.Errorf("count media files: %w", err)
			}

			sampleCount := sampleFlag
			if sampleCount < 0 {
				sampleCount = runCfg.Migration.SamplePaths
			}
			if sampleCount > 0 {
				if samples := sourcePathSample(lib, sampleCount); len(samples) > 0 {
					fmt.Fprintln(out, "Source sample (normalized):")
					for _, sample := range samples {
						fmt.Fprintf(out, "  %s\n", sample)
					}
				}
				samples, err := store.SamplePaths(runCtx, sampleCount)
				if err != nil {
					return fmt.Errorf("sample paths: %w", err)
				}
				if len(samples) > 0 {
					fmt.Fprintln(out, "Catalog sample:")
					for _, sample := range samples {
						fmt.Fprintf(out, "  %s\n", sample)
					}
					fmt.Fprintln(out)
				}
			}

			importPlaylists := runCfg.Migration.ImportPlaylists || playlistFlag
			summary := [][]string{
				{"Library export", runCfg.Paths.LibraryXML},
				{"Navidrome database", runCfg.Paths.NavidromeDB},
				{"Target user", runCfg.Migration.UserID},
				{"Mode", string(mode)},
				{"Dry run", yesNo(dryRunFlag)},
				{"Source tracks", strconv.Itoa(len(lib.Tracks))},
				{"Catalog media files", strconv.Itoa(fileCount)},
				{"Import date added", yesNo(runCfg.Migration.ImportDateAdded)},
				{"Import playlists", yesNo(importPlaylists)},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, summary))

			if !dryRunFlag && !yesFlag {
				prompt := fmt.Sprintf("Merge %d tracks into %s as user %s?", len(lib.Tracks), runCfg.Paths.NavidromeDB, runCfg.Migration.UserID)
				if err := confirm(cmd, prompt); err != nil {
					return err
				}
			}

			if !dryRunFlag {
				lock := flock.New(runCfg.Paths.NavidromeDB + ".crossfade.lock")
				locked, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire migration lock: %w", err)
				}
				if !locked {
					return fmt.Errorf("another migration is already running against %s", runCfg.Paths.NavidromeDB)
				}
				defer func() { _ = lock.Unlock() }()

				if runCfg.Migration.BackupDatabase && !noBackupFlag {
					backupPath, err := fileutil.BackupFile(runCfg.Paths.NavidromeDB, time.Now())
					if err != nil {
						return fmt.Errorf("backup database: %w", err)
					}
					fmt.Fprintf(out, "Backed up database to %s\n", backupPath)
				}
			}

			runner := migrate.NewRunner(store, lib, logger, migrate.Options{
				UserID:          runCfg.Migration.UserID,
				Mode:            mode,
				DryRun:          dryRunFlag,
				ImportDateAdded: runCfg.Migration.ImportDateAdded,
				ImportPlaylists: importPlaylists,
			})
			report, err := runner.Run(runCtx)
			if err != nil {
				return err
			}

			diagnostics, err := report.WriteDiagnostics(runCfg.Paths.LogDir)
			if err != nil {
				logger.Warn("write diagnostics", "error", err)
			}

			results := [][]string{
				{"Source tracks", strconv.Itoa(report.Total)},
				{"Matched", strconv.Itoa(report.Matched)},
				{"Ambiguous", strconv.Itoa(report.Ambiguous)},
				{"Unmatched", strconv.Itoa(report.Unmatched)},
				{"Skipped (no location)", strconv.Itoa(report.SkippedNoLocation)},
				{"Skipped (no history)", strconv.Itoa(report.SkippedNoData)},
				{"Unusable locations", strconv.Itoa(report.PathErrors)},
				{"Annotations written", strconv.Itoa(report.AnnotationsWritten)},
				{"Date added updates", strconv.Itoa(report.CreatedAtUpdates)},
			}
			if importPlaylists {
				results = append(results,
					[]string{"Playlists created", strconv.Itoa(report.PlaylistsCreated)},
					[]string{"Playlist tracks", strconv.Itoa(report.PlaylistTracks)},
				)
			}
			fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, results, 1))

			for _, path := range diagnostics {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			if dryRunFlag {
				fmt.Fprintln(out, "Dry run: no changes were written.")
			} else if mode == migrate.ModeAdd {
				fmt.Fprintln(out, "Note: re-running in add mode doubles play counts; use --replace to re-run.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Path to the iTunes Library.xml export")
	cmd.Flags().StringVar(&dbFlag, "db", "", "Path to the Navidrome database")
	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "Navidrome user ID receiving the history")
	cmd.Flags().BoolVar(&replaceFlag, "replace", false, "Replace existing play counts instead of adding")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().IntVar(&sampleFlag, "sample", -1, "Catalog paths to preview before the run (-1 uses the config value)")
	cmd.Flags().BoolVar(&playlistFlag, "playlists", false, "Also recreate user playlists from matched tracks")
	cmd.Flags().BoolVar(&noBackupFlag, "no-backup", false, "Skip the database backup")

	return cmd
}

// sourcePathSample normalizes the first n locations in the export so the
// operator can eyeball them against the catalog sample before confirming.
func sourcePathSample(lib *library.Library, n int) []string {
	var samples []string
	for _, track := range lib.TracksInOrder() {
		if len(samples) == n {
			break
		}
		normalized, err := pathnorm.Normalize(track.Location)
		if err != nil {
			continue
		}
		samples = append(samples, normalized)
	}
	return samples
}
