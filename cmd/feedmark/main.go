// cmd/feedmark/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalnine/feedmark/internal/config"
	"github.com/signalnine/feedmark/internal/feedback"
)

var (
	cfgFile   string
	path      string
	threshold float64
	force     bool
)

var rootCmd = &cobra.Command{
	Use:           "feedmark",
	Short:         "Track whether a user feedback file changed since an agent last read it",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var checkCmd = &cobra.Command{
	Use:   "check_user_feedback",
	Short: "Print true and exit 0 if the file was modified after its recorded timestamp",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCheck(cmd, os.Stdout, os.Stderr))
	},
}

var initCmd = &cobra.Command{
	Use:   "init_user_feedback",
	Short: "Create the feedback file with a fresh timestamp",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runInit(cmd, os.Stderr))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update_user_feedback",
	Short: "Rewrite the feedback file's timestamp to now",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runUpdate(cmd, os.Stderr))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML defaults file")

	for _, cmd := range []*cobra.Command{checkCmd, initCmd, updateCmd} {
		cmd.Flags().StringVar(&path, "path", config.DefaultPath, "feedback file path")
		rootCmd.AddCommand(cmd)
	}
	checkCmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "tolerance in seconds before a modification counts as fresh")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
}

// runCheck maps the verdict to the process contract: "true" and exit 0
// for fresh, "false" and exit 1 for stale, exit 2 with nothing on stdout
// for any failure. The literal is written without a trailing newline.
func runCheck(cmd *cobra.Command, stdout, stderr io.Writer) int {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fail(stderr, err)
	}
	fresh, err := feedback.Check(resolvePath(cmd, cfg), resolveThreshold(cmd, cfg))
	if err != nil {
		return fail(stderr, err)
	}
	if fresh {
		fmt.Fprint(stdout, "true")
		return 0
	}
	fmt.Fprint(stdout, "false")
	return 1
}

func runInit(cmd *cobra.Command, stderr io.Writer) int {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fail(stderr, err)
	}
	note := cfg.Note
	if note == "" {
		note = feedback.DefaultNote
	}
	if err := feedback.Init(resolvePath(cmd, cfg), note, force); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func runUpdate(cmd *cobra.Command, stderr io.Writer) int {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fail(stderr, err)
	}
	if err := feedback.Update(resolvePath(cmd, cfg)); err != nil {
		return fail(stderr, err)
	}
	return 0
}

// fail reports any operational failure: not-found, already-exists, and
// parse errors all exit 2, leaving 0/1 to the check verdict.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)
	return 2
}

// Explicit flags win over env and config-file defaults.
func resolvePath(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("path") {
		return path
	}
	return cfg.Path
}

func resolveThreshold(cmd *cobra.Command, cfg *config.Config) float64 {
	if cmd.Flags().Changed("threshold") {
		return threshold
	}
	return cfg.Threshold
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
