package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/check"
	"github.com/linux-command-library/lcl/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a command YAML file before adding it to the library",
	Long: `Check that a YAML file holds one command with a name, a category, a
description and a usage line. With --strict (or strict_categories in config)
the category must be one of the allowed categories.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if errors.Is(err, os.ErrNotExist) {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("file not found: %s", args[0]), "")
		}
		if err != nil {
			return handleError(ErrFileNotFound, err, "")
		}

		_, issues, err := validateRecord(data)
		if err != nil {
			return handleError(ErrValidationFailed, err, "")
		}
		return reportValidation(args[0], issues)
	},
}

// validateRecord parses data and runs the write-back checks on it.
func validateRecord(data []byte) (map[string]any, []check.Issue, error) {
	record, err := check.ParseRecord(data)
	if err != nil {
		return nil, nil, err
	}
	c := getConfig()
	v := check.NewValidator(strictFlag || c.StrictCategories, c.Categories())
	return record, v.Validate(record), nil
}

// reportValidation prints issues and fails when any of them is an error.
func reportValidation(label string, issues []check.Issue) error {
	if check.HasErrors(issues) {
		if isJSONOutput() {
			return handleErrorWithDetails(ErrValidationFailed, fmt.Sprintf("%s is not a valid command", label), "", issues)
		}
		fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("%s is not a valid command", label)))
		printValidationIssues(issues)
		return errReported
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{"file": label, "valid": true, "issues": issues}, nil)
		return nil
	}
	printValidationIssues(issues)
	fmt.Println(ui.Checkf("%s is valid", label))
	return nil
}

func printValidationIssues(issues []check.Issue) {
	for _, is := range issues {
		if is.Level == check.LevelError {
			fmt.Fprintln(os.Stderr, "  "+ui.Error(is.String()))
		} else {
			fmt.Fprintln(os.Stderr, "  "+ui.Warning(is.String()))
		}
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
