package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/chris-regnier/mindary/internal/diary"
	"github.com/chris-regnier/mindary/internal/editor"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/ui"
	"github.com/spf13/cobra"
)

var (
	writeDate      string
	writeCategory  string
	writeTitle     string
	writeContent   string
	writeUseEditor bool
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a record without the interactive wizard",
	Long: `Create a record for a day. The category is one of 일상, 영화, 음악, 독서,
에세이, 기타. With --editor, title and content are written in $EDITOR as a
markdown file whose first heading is the title.`,
	Example: `  mindary write --category 영화 --title 듄 --content "모래 언덕이 압도적이었다."
  mindary write --date 2024-03-05 --category 독서 --editor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := resolveDay(writeDate)
		if err != nil {
			return err
		}
		category, err := record.ParseCategory(writeCategory)
		if err != nil {
			return err
		}

		draft := diary.Draft{Day: day, Category: category, Title: writeTitle, Content: writeContent}
		if writeUseEditor {
			title, content, changed, err := editor.EditRecord(editor.ResolveEditor(appConfig.Editor), writeTitle, writeContent)
			if err != nil {
				return err
			}
			if !changed && writeTitle == "" && writeContent == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Nothing written; record not created.")
				return nil
			}
			draft.Title, draft.Content = title, content
		}

		src, err := diarySource()
		if err != nil {
			return err
		}
		return writeRun(cmd.OutOrStdout(), src, draft)
	},
}

func init() {
	writeCmd.Flags().StringVar(&writeDate, "date", "", "day of the record as YYYY-MM-DD (default today)")
	writeCmd.Flags().StringVarP(&writeCategory, "category", "c", "", "record category")
	writeCmd.Flags().StringVarP(&writeTitle, "title", "t", "", "record title")
	writeCmd.Flags().StringVar(&writeContent, "content", "", "record content")
	writeCmd.Flags().BoolVarP(&writeUseEditor, "editor", "e", false, "write title and content in $EDITOR")
	_ = writeCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(writeCmd)
}

func writeRun(w io.Writer, src diary.Source, d diary.Draft) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	r, err := src.CreateRecord(ctx, d)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}
	if jsonOutput {
		return ui.FormatJSON(w, r)
	}
	ui.FormatRecordCreated(w, r)
	return nil
}
