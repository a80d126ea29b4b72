package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

type tabOptions struct {
	Count    int
	Backward bool
}

func tabCmd(flags *globalFlags) *cobra.Command {
	var opts tabOptions

	cmd := &cobra.Command{
		Use:   "tab <tree.toml>",
		Short: "Simulate Tab presses and print the focus after each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Count < 1 {
				return errors.Errorf("--count must be at least 1, got %d", opts.Count)
			}
			h, err := mountTree(flags, args[0], 0, 0)
			if err != nil {
				return err
			}
			runTab(cmd.OutOrStdout(), h, opts, newStyles(!flags.NoColor))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 1, "Number of presses")
	cmd.Flags().BoolVar(&opts.Backward, "shift", false, "Press Shift+Tab instead")
	return cmd
}

func runTab(w io.Writer, h *harness.TestHarness, opts tabOptions, st styles) {
	key := "Tab"
	if opts.Backward {
		key = "Shift+Tab"
	}
	for i := 1; i <= opts.Count; i++ {
		if opts.Backward {
			h.ShiftTab()
		} else {
			h.Tab()
		}
		fmt.Fprintf(w, "%s %d: %s\n", st.render(st.dim, key), i, st.render(st.focused, focusName(h, h.Focused())))
	}
}

// focusName is describe plus the widget's label, when it has one. Ids differ
// between runs; labels don't.
func focusName(h *harness.TestHarness, id retained.WidgetID) string {
	name := describe(h, id)
	ref, ok := h.Root().GetWidget(id)
	if !ok {
		return name
	}
	if l, ok := ref.Widget().(interface{ Label() string }); ok && l.Label() != "" {
		name += fmt.Sprintf(" %q", l.Label())
	}
	return name
}
