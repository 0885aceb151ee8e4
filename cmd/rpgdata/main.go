package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpgdata",
		Short: "Build hero-card player data from forum activity",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(updateCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(statsCmd())

	return root
}

func updateCmd() *cobra.Command {
	var withPosts bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Scrape the member list and refresh the players file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(withPosts)
		},
	}

	cmd.Flags().BoolVar(&withPosts, "posts", false, "also analyze each user's post history")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var (
		user       string
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze post activity and recompute scores and bonuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(user, activeOnly)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "analyze a single user only")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "skip users absent from the forum activity feed")
	return cmd
}

func statsCmd() *cobra.Command {
	var (
		jsonOutput  bool
		historyUser string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the current players file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(jsonOutput, historyUser)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&historyUser, "history", "", "show the score history for a user")
	return cmd
}
