package main

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

type renderOptions struct {
	Access  bool
	Signals bool
	Width   float64
	Height  float64
}

func renderCmd(flags *globalFlags) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <tree.toml>",
		Short: "Lay out and paint a widget tree, then print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := mountTree(flags, args[0], opts.Width, opts.Height)
			if err != nil {
				return err
			}
			runRender(cmd.OutOrStdout(), h, opts, newStyles(!flags.NoColor))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Access, "access", false, "Dump the accessibility tree update")
	cmd.Flags().BoolVar(&opts.Signals, "signals", false, "List the signals raised while mounting and rendering")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "Window width in logical pixels (overrides the config)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "Window height in logical pixels (overrides the config)")
	return cmd
}

// mountTree loads the config and the tree description and mounts the tree.
func mountTree(flags *globalFlags, path string, width, height float64) (*harness.TestHarness, error) {
	config, err := flags.loadConfig()
	if err != nil {
		return nil, err
	}
	if width > 0 {
		config.Window.Width = width
	}
	if height > 0 {
		config.Window.Height = height
	}
	opts, err := config.Options()
	if err != nil {
		return nil, err
	}

	tree, err := LoadTree(path)
	if err != nil {
		return nil, err
	}
	built, err := tree.build()
	if err != nil {
		return nil, err
	}
	return built.mount(opts), nil
}

func runRender(w io.Writer, h *harness.TestHarness, opts renderOptions, st styles) {
	scene := h.Render()
	access := h.AccessTree()

	st.heading(w, "Tree")
	printOutline(w, h, st)

	fmt.Fprintln(w)
	st.heading(w, "Scene")
	fmt.Fprintf(w, "hash %016x\n", retained.SceneHash(scene))

	if opts.Access {
		fmt.Fprintln(w)
		st.heading(w, "Accessibility")
		pretty.Fprintf(w, "%# v\n", access)
	}

	if opts.Signals {
		fmt.Fprintln(w)
		st.heading(w, "Signals")
		for _, s := range h.PopSignals() {
			fmt.Fprintln(w, formatSignal(h, s))
		}
	}
}

func formatSignal(h *harness.TestHarness, s retained.Signal) string {
	switch s.Kind {
	case retained.SignalAction:
		return fmt.Sprintf("%s %T from %s", s.Kind, s.Action, describe(h, s.Source))
	case retained.SignalSetCursor:
		return fmt.Sprintf("%s %v", s.Kind, s.Cursor)
	case retained.SignalImeMoved:
		return fmt.Sprintf("%s at (%g,%g) %gx%g", s.Kind, s.Position.X, s.Position.Y, s.Size.Width, s.Size.Height)
	default:
		return s.Kind.String()
	}
}
