package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/ui"
	"github.com/spf13/cobra"
)

var (
	memoDate string
	memoRole string
)

var memoCmd = &cobra.Command{
	Use:   "memo <text>",
	Short: "Add a memo to a day",
	Example: `  mindary memo "점심은 김밥"
  mindary memo --role assistant --date 2024-03-05 "오늘 기분은 어땠나요?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := resolveDay(memoDate)
		if err != nil {
			return err
		}
		src, err := diarySource()
		if err != nil {
			return err
		}
		return memoRun(cmd.OutOrStdout(), src, day, memoRole, strings.Join(args, " "))
	},
}

func init() {
	memoCmd.Flags().StringVar(&memoDate, "date", "", "day of the memo as YYYY-MM-DD (default today)")
	memoCmd.Flags().StringVar(&memoRole, "role", "user", "who is speaking (user|assistant)")
	rootCmd.AddCommand(memoCmd)
}

func memoRun(w io.Writer, src diary.Source, day, role, content string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	m, err := src.CreateMemo(ctx, day, role, content)
	if err != nil {
		return fmt.Errorf("creating memo: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, m)
	}
	ui.FormatMemoCreated(w, m)
	return nil
}
