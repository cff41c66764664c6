package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/game"
)

func newDayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "Show the encoding and answer identifier of a day",
		Long: `Prints the MMDDYYYY encoding and the answer identifier of a day.
The date is YYYY-MM-DD or MMDDYYYY; without it, today is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date *time.Time
			if len(args) == 1 {
				d, err := daily.ParseDate(args[0], a.loc)
				if err != nil {
					return err
				}
				date = &d
			}
			day := a.selector().Day(date)
			encoded := daily.Encode(day)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\n", day.Format(time.DateOnly), encoded, daily.IdentifierFor(encoded))
			return nil
		},
	}
}

func newGuessCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "guess <word>",
		Short: "Classify a guess against the day's secret word",
		Long: `Prints one line per letter, then the compact pattern
(G correct, Y present, . absent).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dateFlag(cmd)
			if err != nil {
				return err
			}
			return a.withService(cmd, func(ctx context.Context, svc *game.Service) error {
				out, err := svc.Guess(ctx, args[0], date)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(out)
				}
				for _, l := range out.Letters {
					fmt.Fprintf(w, "%s\t%s\n", l.Letter, l.Classification)
				}
				fmt.Fprintln(w, out.Pattern())
				if out.ExactMatch {
					fmt.Fprintln(w, "exact match")
				}
				return nil
			})
		},
	}
	cmd.Flags().String("date", "", "Day to play (YYYY-MM-DD or MMDDYYYY), today by default")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
