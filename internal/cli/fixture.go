package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thruflo/todomvc-e2e/internal/fixture"
	"github.com/thruflo/todomvc-e2e/internal/schema"
)

var (
	fixtureScript bool
	fixtureKey    string
)

var fixtureCmd = &cobra.Command{
	Use:   "fixture <text[:active|completed]>...",
	Short: "Print the storage payload for a list of tasks",
	Long: `Prints the JSON the app keeps in localStorage for the given tasks, in order.
Each argument is a task text, optionally suffixed with :active (the default)
or :completed.

With --script, prints the localStorage.setItem call that seeds the payload,
ready to paste into a browser console.`,
	Example: `  todomvc-e2e fixture "buy milk" "walk dog:completed"
  todomvc-e2e fixture --script "1:completed" 2`,
	RunE: runFixture,
}

func init() {
	fixtureCmd.Flags().BoolVar(&fixtureScript, "script", false, "print the seeding script instead of the payload")
	fixtureCmd.Flags().StringVar(&fixtureKey, "key", fixture.DefaultStorageKey, "localStorage key used by --script")
	rootCmd.AddCommand(fixtureCmd)
}

func runFixture(cmd *cobra.Command, args []string) error {
	tasks := make([]fixture.Task, 0, len(args))
	for _, arg := range args {
		task, err := fixture.Parse(arg)
		if err != nil {
			return err
		}
		tasks = append(tasks, task)
	}

	payload, err := fixture.Marshal(tasks...)
	if err != nil {
		return err
	}
	if err := schema.ValidateStorage(payload); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !fixtureScript {
		fmt.Fprintln(out, string(payload))
		return nil
	}
	script, err := fixture.StorageScript(fixtureKey, payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, script)
	return nil
}
