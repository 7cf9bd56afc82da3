package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/n64tools/savesync/internal/config"
	"github.com/n64tools/savesync/internal/syncer"
	"github.com/n64tools/savesync/internal/version"
)

var (
	home, _           = os.UserHomeDir()
	defaultConfigPath = filepath.Join(home, ".savesync", "config.json")
	logLevel          = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   "savesync",
	Short: "Copy N64 game saves between emulator save formats",
	Long: `savesync keeps Nintendo 64 save files in sync across the save-storage
conventions of Project64, Mupen64Plus and Everdrive, translating file names
and folder layouts per game. Games are keyed by the ROM files in --rom-dir.`,
	Version:       version.Detailed(),
	SilenceErrors: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return setLogLevel(viper.GetString("loglevel"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			RomDir:      viper.GetString("rom_dir"),
			SrcFormat:   viper.GetString("src_format"),
			SrcDir:      viper.GetString("src_dir"),
			DstFormat:   viper.GetString("dst_format"),
			DstDir:      viper.GetString("dst_dir"),
			Recursive:   viper.GetBool("recursive"),
			Backup:      !viper.GetBool("no_backup"),
			OnlyIfNewer: !viper.GetBool("force"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		cmd.SilenceUsage = true

		report, err := syncer.Run(cfg)
		if err != nil {
			return err
		}

		printReport(report)
		return nil
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().String("rom-dir", "", "Directory of N64 ROM files defining the game set")
	rootCmd.Flags().String("src-format", "", "Source save format (project64|mupen64plus|everdrive)")
	rootCmd.Flags().String("src-dir", "", "Root directory of source saves")
	rootCmd.Flags().String("dst-format", "", "Destination save format (project64|mupen64plus|everdrive)")
	rootCmd.Flags().String("dst-dir", "", "Root directory of destination saves")
	rootCmd.Flags().BoolP("recursive", "r", false, "Scan the ROM directory recursively")
	rootCmd.Flags().Bool("no-backup", false, "Do not back up destination files before overwriting")
	rootCmd.Flags().Bool("force", false, "Overwrite destination saves even when they are not older")
	rootCmd.Flags().String("loglevel", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringP("config", "c", defaultConfigPath, "Config file")
}

func main() {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red.Render("ERROR"), err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.AddConfigPath(filepath.Join(home, ".savesync"))
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	for key, flag := range map[string]string{
		"rom_dir":    "rom-dir",
		"src_format": "src-format",
		"src_dir":    "src-dir",
		"dst_format": "dst-format",
		"dst_dir":    "dst-dir",
		"recursive":  "recursive",
		"no_backup":  "no-backup",
		"force":      "force",
		"loglevel":   "loglevel",
	} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}

	viper.SetEnvPrefix("SAVESYNC")
	viper.AutomaticEnv()
	return nil
}

func setLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

func printReport(report *syncer.Report) {
	var sb strings.Builder
	for _, game := range report.Games {
		sb.WriteString(cyan.Render(game.Game) + "\n")
		for _, item := range game.Items {
			line := fmt.Sprintf("  %-18s %s", item.Kind, renderStatus(item))
			sb.WriteString(line + "\n")
		}
	}
	fmt.Print(sb.String())

	counts := report.Counts()
	copied := counts[syncer.StatusCopied] + counts[syncer.StatusBackedUpAndCopied]
	summary := fmt.Sprintf("Synced %d file(s) (%s), skipped %d, failed %d in %s\n",
		copied,
		humanize.IBytes(uint64(report.CopiedBytes())),
		counts[syncer.StatusSkippedNotNewer]+counts[syncer.StatusSkippedNoSource],
		counts[syncer.StatusFailed],
		report.Duration.Round(time.Millisecond))
	if counts[syncer.StatusFailed] > 0 {
		fmt.Print(red.Render(summary))
	} else {
		fmt.Print(summary)
	}
}

func renderStatus(item syncer.Item) string {
	switch item.Status {
	case syncer.StatusCopied:
		return green.Render(fmt.Sprintf("copied (%s)", humanize.IBytes(uint64(item.Bytes))))
	case syncer.StatusBackedUpAndCopied:
		return green.Render(fmt.Sprintf("backed up and copied (%s)", humanize.IBytes(uint64(item.Bytes))))
	case syncer.StatusSkippedNotNewer:
		return gray.Render("skipped, destination not older")
	case syncer.StatusSkippedNoSource:
		return gray.Render("no source save")
	case syncer.StatusFailed:
		return red.Render(fmt.Sprintf("failed: %s", item.Err))
	default:
		return item.Status.String()
	}
}
