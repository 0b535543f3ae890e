package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/config"
	"github.com/linux-command-library/lcl/internal/pins"
	"github.com/linux-command-library/lcl/internal/ui"
)

func openPins() (*pins.Store, error) {
	store, err := pins.Open(config.ResolvePinsPath(configPath))
	if err != nil {
		return nil, handleError(ErrConfigInvalid, err, "")
	}
	return store, nil
}

var pinCmd = &cobra.Command{
	Use:   "pin <name>",
	Short: "Pin a command to your favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		doc, err := findCommand(snap, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return pinName(doc.Name)
	},
}

func pinName(name string) error {
	store, err := openPins()
	if err != nil {
		return err
	}
	added := store.Add(name)
	if added {
		if err := store.Save(); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{"name": name, "added": added, "pins": store.List()}, nil)
		return nil
	}
	if added {
		fmt.Println(ui.Checkf("Pinned %s", name))
	} else {
		fmt.Println(ui.Hint(name + " is already pinned"))
	}
	return nil
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <name>",
	Short: "Remove a command from your favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		store, err := openPins()
		if err != nil {
			return err
		}
		if !store.Remove(name) {
			return handleErrorMsg(ErrCommandNotFound, fmt.Sprintf("%s is not pinned", name), "Run 'lcl pins' to list pinned commands")
		}
		if err := store.Save(); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"name": name, "pins": store.List()}, nil)
			return nil
		}
		fmt.Println(ui.Checkf("Unpinned %s", name))
		return nil
	},
}

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "List pinned commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPins()
		if err != nil {
			return err
		}
		names := store.List()

		if isJSONOutput() {
			outputSuccess(names, &Meta{Count: len(names)})
			return nil
		}
		if len(names) == 0 {
			fmt.Println(ui.Hint("No pinned commands. Use 'lcl pin <name>' to add one."))
			return nil
		}
		for _, n := range names {
			fmt.Println("  " + ui.Accent.Render(n))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
	rootCmd.AddCommand(pinsCmd)
}
