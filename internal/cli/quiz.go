package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/query"
	"github.com/linux-command-library/lcl/internal/ui"
)

var quizAnswer string

var quizCmd = &cobra.Command{
	Use:   "quiz <name>",
	Short: "Test yourself on a command's syntax",
	Long: `Ask for the syntax of a command and check the answer against its usage line.

An answer is correct when it appears in the usage line exactly as typed, so
"grep [OPTION]..." counts for "grep [OPTION]... PATTERNS [FILE]...".
Pass --answer to check without prompting.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		doc, err := findCommand(snap, strings.Join(args, " "))
		if err != nil {
			return err
		}

		answer := quizAnswer
		if !cmd.Flags().Changed("answer") {
			if isJSONOutput() {
				return handleErrorMsg(ErrInvalidInput, "--answer is required with --json", "")
			}
			fmt.Println(ui.Header("Quiz: " + doc.Name))
			fmt.Println(ui.Hint("Type the syntax and press Enter."))
			answer, err = promptAnswer()
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading answer: %w", err)
			}
		}

		res, err := query.CheckAnswer(doc, answer)
		if errors.Is(err, query.ErrNoReferenceSyntax) {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("%s has no usage line to check against", doc.Name), "")
		}

		if isJSONOutput() {
			outputSuccess(res, nil)
			return nil
		}
		if res.Correct {
			fmt.Println(ui.Check("Looks good!"))
			return nil
		}
		fmt.Println(ui.Error("Not quite."))
		fmt.Println(ui.Hint("Expected it to appear in:"))
		fmt.Printf("  %s\n", res.Expected)
		return nil
	},
}

func promptAnswer() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	return line.Prompt("> ")
}

func init() {
	quizCmd.Flags().StringVar(&quizAnswer, "answer", "", "Check this answer instead of prompting")
	rootCmd.AddCommand(quizCmd)
}
