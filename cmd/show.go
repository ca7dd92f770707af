package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/storage"
	"github.com/chris-regnier/mindary/internal/ui"
	"github.com/spf13/cobra"
)

var (
	showDate   string
	showMode   string
	showRecord string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a day's memos and records",
	Long:  "Print the memos and records of one day without starting the interactive view.",
	Example: `  mindary show
  mindary show --date 2024-03-05 --mode record
  mindary show --record a3kf9x2m
  mindary show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showRecord != "" {
			s, err := openStore()
			if err != nil {
				return err
			}
			return showRecordRun(cmd.OutOrStdout(), s, showRecord)
		}

		day, err := resolveDay(showDate)
		if err != nil {
			return err
		}
		src, err := diarySource()
		if err != nil {
			return err
		}
		return showRun(cmd.OutOrStdout(), src, day, showMode)
	},
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "day to show as YYYY-MM-DD (default today)")
	showCmd.Flags().StringVar(&showMode, "mode", "all", "what to show (memo|record|all)")
	showCmd.Flags().StringVar(&showRecord, "record", "", "show one record in full by ID")
	rootCmd.AddCommand(showCmd)
}

func showRun(w io.Writer, src diary.Source, day, mode string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	snap, err := src.Fetch(ctx, day)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", day, err)
	}

	if jsonOutput {
		if snap.Chats == nil {
			snap.Chats = []record.Memo{}
		}
		if snap.Records == nil {
			snap.Records = []record.Record{}
		}
		return ui.FormatJSON(w, snap)
	}

	t, err := record.ParseDay(day, location)
	if err != nil {
		return err
	}
	title := record.Title(t, location)

	var buf bytes.Buffer
	switch mode {
	case "memo":
		ui.FormatDay(&buf, title, diary.ModeMemo, snap)
	case "record":
		ui.FormatDay(&buf, title, diary.ModeRecord, snap)
	case "all", "":
		ui.FormatDay(&buf, title, diary.ModeMemo, snap)
		fmt.Fprintln(&buf)
		ui.FormatDay(&buf, "", diary.ModeRecord, snap)
	default:
		return fmt.Errorf("unknown mode %q (use memo, record or all)", mode)
	}
	return ui.OutputOrPage(w, buf.String(), ui.ResolveTheme(appConfig.Theme), appConfig.MaxWidth)
}

func showRecordRun(w io.Writer, s storage.Storage, id string) error {
	if err := record.ValidateID(id); err != nil {
		return err
	}
	r, err := s.GetRecord(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("record %s not found", id)
		}
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, r)
	}
	theme := ui.ResolveTheme(appConfig.Theme)
	var buf bytes.Buffer
	ui.FormatRecordFull(&buf, r, theme.MarkdownStyle)
	return ui.OutputOrPage(w, buf.String(), theme, appConfig.MaxWidth)
}
