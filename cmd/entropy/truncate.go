package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekaya-inc/entropy/pkg/textutil"
)

func newTruncateCmd() *cobra.Command {
	var (
		words int
		chars int
	)

	cmd := &cobra.Command{
		Use:   "truncate <text>...",
		Short: "Shorten text to a number of words or characters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			switch {
			case words > 0 && chars > 0:
				return errors.New("use only one of --words and --chars")
			case words > 0:
				text = textutil.TruncateWords(text, words)
			case chars > 0:
				text = textutil.TruncateChars(text, chars)
			default:
				return errors.New("one of --words or --chars is required")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().IntVarP(&words, "words", "w", 0, "Keep this many words")
	cmd.Flags().IntVarP(&chars, "chars", "n", 0, "Keep this many characters, ellipsis included")

	return cmd
}
