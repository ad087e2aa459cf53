package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	versionCmd     = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about team-tracker",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "team-tracker",
		Short: "Basketball roster and match tracker",
		Long: `team-tracker - Keeps a team's roster, player averages and coaching records up to date
from match sheets, and handles trades, hires and firings.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.AddCommand(versionCmd, ingestCmd(), watchCmd(), rosterCmd(), matchesCmd(), organizeCmd(),
		resetCmd(), tradeCmd(), hireCmd(), fireCmd(), chartCmd(), historyCmd())

	return rootCmd
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("team-tracker - Basketball roster tracker\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)                //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)                 //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)                   //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)            //nolint:forbidigo
}
