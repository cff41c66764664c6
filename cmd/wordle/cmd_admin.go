package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bodul/wordle/internal/game"
	"github.com/bodul/wordle/internal/seed"
)

func newWordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage the list of admissible guesses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <word>...",
			Short: "Add words to the list",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withService(cmd, func(ctx context.Context, svc *game.Service) error {
					for _, w := range args {
						added, err := svc.AddWord(ctx, w)
						if err != nil {
							return err
						}
						fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", added)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <word>...",
			Short: "Remove words from the list",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withService(cmd, func(ctx context.Context, svc *game.Service) error {
					for _, w := range args {
						removed, err := svc.RemoveWord(ctx, w)
						if err != nil {
							return err
						}
						fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", removed)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "check <word>",
			Short: "Tell whether a word may be guessed",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withService(cmd, func(ctx context.Context, svc *game.Service) error {
					if err := svc.CheckWord(ctx, args[0]); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "valid")
					return nil
				})
			},
		},
	)

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *game.Service) error {
				words, err := svc.ListWords(ctx, limit)
				if err != nil {
					return err
				}
				for _, w := range words {
					fmt.Fprintln(cmd.OutOrStdout(), w.Text)
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Maximum number of words, 0 for all")
	cmd.AddCommand(list)

	return cmd
}

func newAnswerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Manage daily answers",
	}

	set := &cobra.Command{
		Use:   "set <word>",
		Short: "Bind a word as the secret of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dateFlag(cmd)
			if err != nil {
				return err
			}
			return a.withService(cmd, func(ctx context.Context, svc *game.Service) error {
				day, err := svc.SetAnswer(ctx, args[0], date)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "answer for %s set (identifier %d)\n", day.Date, day.Identifier)
				return nil
			})
		},
	}
	set.Flags().String("date", "", "Day to bind (YYYY-MM-DD or MMDDYYYY), today by default")
	cmd.AddCommand(set)

	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load a YAML bank of words and answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := seed.Load(args[0])
			if err != nil {
				return err
			}
			return a.withService(cmd, func(ctx context.Context, svc *game.Service) error {
				report, err := seed.Apply(ctx, bank, svc, a.loc, a.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d words added, %d already present, %d answers set\n",
					report.WordsAdded, report.WordsSkipped, report.Answers)
				return nil
			})
		},
	}
}
