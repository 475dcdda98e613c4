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
		Use:   "jobtrawl",
		Short: "Trawl job boards and score postings against your profile",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(trawlCmd())
	root.AddCommand(runCmd())
	root.AddCommand(matchesCmd())
	root.AddCommand(profileCmd())

	return root
}

func trawlCmd() *cobra.Command {
	var (
		keywords []string
		location string
		details  bool
	)

	cmd := &cobra.Command{
		Use:   "trawl",
		Short: "Run one search across all enabled boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrawl(keywords, location, details)
		},
	}

	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "search keywords (default: from config)")
	cmd.Flags().StringVar(&location, "location", "", "search location (default: from config)")
	cmd.Flags().BoolVar(&details, "details", false, "fetch full job descriptions before scoring")
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start daemon trawling on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon()
		},
	}
	return cmd
}

func matchesCmd() *cobra.Command {
	var (
		jsonOutput bool
		minScore   float64
		limit      int
		board      string
	)

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Show stored postings ordered by match score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatches(jsonOutput, minScore, limit, board)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().Float64Var(&minScore, "min-score", -1, "minimum match score (default: from config)")
	cmd.Flags().IntVar(&limit, "limit", 20, "max postings to show")
	cmd.Flags().StringVar(&board, "board", "", "filter by board (adzuna, jsearch, linkedin, reed, indeed, feed)")
	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the candidate profile used for matching",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile()
		},
	}
	return cmd
}
