package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/studiowebux/canvascli/internal/cli"
	"github.com/studiowebux/canvascli/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "canvascli [course-id]",
	Short: "Canvas LMS course browser",
	Long: `canvascli is a terminal browser for a Canvas LMS instance.

Run without arguments to pick a course interactively, or pass a course
id to open it directly. Each course renders as one collapsible document:
announcements, front page, assignments, modules and discussions.

Configuration lives in ~/.canvascli/config.yaml (or config.jsonc):

  base_url: https://canvas.example.edu
  token: <your Canvas access token>

CANVAS_BASE_URL and CANVAS_ACCESS_TOKEN override the file.

Examples:
  canvascli                  # interactive course picker
  canvascli 421              # open course 421 directly
  canvascli courses          # list courses to stdout
  canvascli dump 421         # print course 421 fully expanded
  canvascli whoami           # show the authenticated user`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tui.RunOptions{
			ConfigPath: flagConfig,
			Reload:     flagReload,
		}
		if len(args) > 0 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			opts.CourseID = id
		}
		return tui.Run(opts)
	},
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses, newest term first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Courses(cliOptions())
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <course-id>",
	Short: "Print a course page fully expanded",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid course id %q", args[0])
		}
		return cli.Dump(cliOptions(), id)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Whoami(cliOptions())
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent API requests from the request log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHistoryStats {
			return cli.Stats(cliOptions())
		}
		return cli.History(cliOptions(), flagHistoryLimit)
	},
}

var (
	flagConfig       string
	flagReload       bool
	flagHistoryLimit int
	flagHistoryStats bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&flagReload, "reload", false, "Bypass the cached course list")

	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 50, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show per-endpoint aggregates instead of raw entries")

	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(historyCmd)
}

func cliOptions() cli.Options {
	return cli.Options{
		ConfigPath: flagConfig,
		Reload:     flagReload,
	}
}
