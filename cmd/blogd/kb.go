package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/upb/blog-platform/internal/kb"
	"go.uber.org/zap"
)

const defaultKBPath = "public/kb.json"

func kbCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Inspect the support knowledge base",
	}

	def := os.Getenv("KB_PATH")
	if def == "" {
		def = defaultKBPath
	}
	cmd.PersistentFlags().StringVar(&path, "path", def, "knowledge base file (.json, .yaml)")

	cmd.AddCommand(kbListCmd(&path))
	cmd.AddCommand(kbSearchCmd(&path))
	return cmd
}

func kbListCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List knowledge base entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := kb.NewLoader(*path, 0, zap.NewNop()).Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Knowledge base is empty.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%-12s %s\n", e.ID, e.Title)
			}
			return nil
		},
	}
}

func kbSearchCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "search [question]",
		Short: "Score a question against the knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := kb.NewLoader(*path, 0, zap.NewNop()).Load(cmd.Context())
			if err != nil {
				return err
			}

			result := kb.Retrieve(entries, strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if result.Best == nil {
				fmt.Fprintln(out, "No matching entry.")
				return nil
			}

			fmt.Fprintf(out, "best:     %s (%s)\n", result.Best.ID, result.Best.Title)
			fmt.Fprintf(out, "score:    %.2f\n", result.Score)
			fmt.Fprintf(out, "accepted: %t\n", result.Accepted())
			return nil
		},
	}
}
