package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bijbelquiz.app/backend/internal/questionbank"
	"bijbelquiz.app/backend/internal/quiz"
	"bijbelquiz.app/backend/internal/references"
	"bijbelquiz.app/backend/internal/sheet"
)

func newQuestionsCommand() *cobra.Command {
	var file string

	command := &cobra.Command{
		Use:   "questions",
		Short: "Inspect and maintain the questions file",
	}
	command.PersistentFlags().StringVar(&file, "file", "", "questions file (defaults to questions.file from config)")

	bank := func() (*questionbank.Bank, error) {
		if file != "" {
			return questionbank.New(file), nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return questionbank.New(cfg.Questions.File), nil
	}

	command.AddCommand(
		newQuestionsStatsCommand(bank),
		newQuestionsValidateCommand(bank),
		newQuestionsMergeCommand(bank),
		newQuestionsRefsCheckCommand(bank),
		newQuestionsRefsUpdateCommand(bank),
		newQuestionsSheetCommand(bank),
	)
	return command
}

type bankFunc func() (*questionbank.Bank, error)

// loadQuestions reads path when given, otherwise the bank.
func loadQuestions(bank bankFunc, path string) ([]quiz.Question, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		questions, err := questionbank.Decode(data)
		return questions, path, err
	}
	b, err := bank()
	if err != nil {
		return nil, "", err
	}
	questions, err := b.Load()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", b.Path(), err)
	}
	return questions, b.Path(), nil
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func newQuestionsStatsCommand(bank bankFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Count questions per type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, path, err := loadQuestions(bank, optionalArg(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d questions\n", path, len(questions))
			for _, s := range questionbank.Stats(questions) {
				fmt.Fprintf(out, "  %-16s %d\n", s.Type.Label(), s.Count)
			}
			return nil
		},
	}
}

func newQuestionsValidateCommand(bank bankFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check question shapes and biblical references",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, path, err := loadQuestions(bank, optionalArg(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for i, q := range questions {
				label := questionLabel(i, q)
				if err := quiz.Validate(q); err != nil {
					failed++
					fmt.Fprintln(out, color.RedString("✗ %s: %v", label, err))
				}
				if !references.Valid(q.BiblicalReference) {
					failed++
					fmt.Fprintln(out, color.RedString("✗ %s: unknown biblical reference %q", label, q.BiblicalReference))
				}
				if q.Type == quiz.TypeFillInTheBlank && !quiz.HasBlank(q.Prompt) {
					fmt.Fprintln(out, color.YellowString("! %s: fill-in-the-blank prompt has no %s", label, quiz.BlankMarker))
				}
			}
			if failed > 0 {
				return fmt.Errorf("validation failed with %d error(s) in %s", failed, path)
			}
			fmt.Fprintln(out, color.GreenString("✓ %d questions in %s are valid", len(questions), path))
			return nil
		},
	}
}

func questionLabel(i int, q quiz.Question) string {
	if q.ID != "" {
		return q.ID
	}
	return fmt.Sprintf("#%d", i+1)
}

func newQuestionsMergeCommand(bank bankFunc) *cobra.Command {
	var noBackup bool

	command := &cobra.Command{
		Use:   "merge <batch.json>",
		Short: "Add an exported batch to the questions file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			questions, err := questionbank.Decode(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			var invalid []string
			for i, q := range questions {
				if err := quiz.Validate(q); err != nil {
					invalid = append(invalid, fmt.Sprintf("%s: %v", questionLabel(i, q), err))
				}
			}
			if len(invalid) > 0 {
				return fmt.Errorf("batch has invalid questions:\n%s", strings.Join(invalid, "\n"))
			}
			batch, err := questionbank.DecodeEntries(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			b, err := bank()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			existing := []questionbank.Entry{}
			raw, err := b.Raw()
			switch {
			case errors.Is(err, questionbank.ErrNotFound):
			case err != nil:
				return err
			default:
				if existing, err = questionbank.DecodeEntries(raw); err != nil {
					return fmt.Errorf("%s: %w", b.Path(), err)
				}
				if !noBackup {
					if err := writeBackup(out, b.Path(), raw); err != nil {
						return err
					}
				}
			}

			merged, res := questionbank.Merge(existing, batch)
			if err := b.SaveEntries(merged); err != nil {
				return fmt.Errorf("bank.SaveEntries() > %w", err)
			}
			for _, prompt := range res.Skipped {
				fmt.Fprintln(out, color.YellowString("skipped duplicate: %s", prompt))
			}
			fmt.Fprintln(out, color.GreenString("added %d question(s) to %s", res.Added, b.Path()))
			return nil
		},
	}
	command.Flags().BoolVar(&noBackup, "no-backup", false, "do not write <file>.backup first")
	return command
}

// writeBackup stores the untouched file contents next to path.
func writeBackup(out io.Writer, path string, raw []byte) error {
	backupPath := path + ".backup"
	if err := os.WriteFile(backupPath, raw, 0644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	fmt.Fprintf(out, "Backup: %s\n", backupPath)
	return nil
}

// defaultMaxChecks bounds refs-check on the full bank unless --max says otherwise.
const defaultMaxChecks = 100

func newQuestionsRefsCheckCommand(bank bankFunc) *cobra.Command {
	var maxChecks int

	command := &cobra.Command{
		Use:   "refs-check [file]",
		Short: "List questions whose biblical reference names an unknown book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, _, err := loadQuestions(bank, optionalArg(args))
			if err != nil {
				return err
			}
			if maxChecks > 0 && len(questions) > maxChecks {
				questions = questions[:maxChecks]
			}
			for _, f := range references.Check(questions) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.ID, f.Book)
			}
			return nil
		},
	}
	command.Flags().IntVar(&maxChecks, "max", defaultMaxChecks, "check at most this many questions (0 checks all)")
	return command
}

func newQuestionsRefsUpdateCommand(bank bankFunc) *cobra.Command {
	var noBackup bool

	command := &cobra.Command{
		Use:   "refs-update",
		Short: "Rewrite legacy book names in biblical references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bank()
			if err != nil {
				return err
			}
			raw, err := b.Raw()
			if err != nil {
				return fmt.Errorf("%s: %w", b.Path(), err)
			}
			entries, err := questionbank.DecodeEntries(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", b.Path(), err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d questions from %s\n", len(entries), b.Path())

			if !noBackup {
				if err := writeBackup(out, b.Path(), raw); err != nil {
					return err
				}
			}

			changes := references.Update(entries)
			for _, c := range changes {
				fmt.Fprintf(out, "Updated: %s → %s\n", c.Old, c.New)
			}
			if len(changes) == 0 {
				fmt.Fprintln(out, color.GreenString("No biblical references needed updating"))
				return nil
			}
			if err := b.SaveEntries(entries); err != nil {
				return fmt.Errorf("bank.SaveEntries() > %w", err)
			}
			fmt.Fprintln(out, color.GreenString("Updated %d biblical reference(s)", len(changes)))
			return nil
		},
	}
	command.Flags().BoolVar(&noBackup, "no-backup", false, "do not write <file>.backup first")
	return command
}

func newQuestionsSheetCommand(bank bankFunc) *cobra.Command {
	var (
		output string
		title  string
	)

	command := &cobra.Command{
		Use:   "sheet [file]",
		Short: "Render a PDF proofreading sheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, path, err := loadQuestions(bank, optionalArg(args))
			if err != nil {
				return err
			}
			if title == "" {
				title = filepath.Base(path)
			}
			pdf, err := sheet.GeneratePDF(sheet.Data{Title: title, Date: time.Now(), Questions: questions})
			if err != nil {
				return fmt.Errorf("sheet.GeneratePDF() > %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "-" {
				if err := os.WriteFile(output, pdf, 0644); err != nil {
					return err
				}
				fmt.Fprintln(w, color.GreenString("wrote %s (%d questions)", output, len(questions)))
				return nil
			}
			_, err = w.Write(pdf)
			return err
		},
	}
	command.Flags().StringVarP(&output, "output", "o", "vragen.pdf", `output file, "-" for stdout`)
	command.Flags().StringVar(&title, "title", "", "sheet title (defaults to the file name)")
	return command
}
