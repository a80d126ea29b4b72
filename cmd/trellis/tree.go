package main

import (
	"bytes"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

// TreeFile is a widget tree description:
//
//	[root]
//	type = "column"
//	class = "p-4 bg-white"
//	gap = 8
//
//	[[root.children]]
//	type = "button"
//	text = "Save"
type TreeFile struct {
	Root NodeSpec `toml:"root"`
}

// NodeSpec describes one widget and its children.
type NodeSpec struct {
	// column, row, label, button, input, box or expand
	Type  string `toml:"type"`
	Class string `toml:"class"`
	// Label and button text, or an input's placeholder
	Text string `toml:"text"`
	// Box size
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Flex spacing between children
	Gap      float64    `toml:"gap"`
	Disabled bool       `toml:"disabled"`
	Stashed  bool       `toml:"stashed"`
	Children []NodeSpec `toml:"children"`
}

// LoadTree reads a tree description from path.
func LoadTree(path string) (TreeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TreeFile{}, errors.Wrapf(err, "failed to read %s", path)
	}
	return ParseTree(data)
}

// ParseTree decodes a tree description. Unknown keys are rejected so typos
// do not silently drop widgets.
func ParseTree(data []byte) (TreeFile, error) {
	var tree TreeFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tree); err != nil {
		return TreeFile{}, errors.Wrap(err, "failed to parse tree")
	}
	if tree.Root.Type == "" {
		return TreeFile{}, errors.New("tree has no [root] widget")
	}
	return tree, nil
}

// builtTree is a description turned into widgets.
type builtTree struct {
	root retained.Widget
	// Pods whose initial disabled or stashed flag must be set once the
	// tree is mounted.
	disabled []retained.WidgetID
	stashed  []retained.WidgetID
}

// build turns the description into widgets. The root becomes the
// RenderRoot's root widget, so its class is ignored.
func (t TreeFile) build() (*builtTree, error) {
	b := &builtTree{}
	root, err := b.widget(t.Root, "root")
	if err != nil {
		return nil, err
	}
	b.root = root
	return b, nil
}

func (b *builtTree) widget(spec NodeSpec, path string) (retained.Widget, error) {
	children := make([]*retained.WidgetPod, 0, len(spec.Children))
	for i, child := range spec.Children {
		pod, err := b.pod(child, path+"."+child.Type+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		children = append(children, pod)
	}

	switch spec.Type {
	case "label", "button", "input":
		if len(children) > 0 {
			return nil, errors.Errorf("%s: %s cannot have children", path, spec.Type)
		}
	case "box", "expand":
		if len(children) > 1 {
			return nil, errors.Errorf("%s: %s takes at most one child", path, spec.Type)
		}
	}

	switch spec.Type {
	case "column":
		return harness.Column(children...).WithGap(spec.Gap), nil
	case "row":
		return harness.Row(children...).WithGap(spec.Gap), nil
	case "label":
		return harness.NewLabel(spec.Text), nil
	case "button":
		return harness.NewButton(spec.Text), nil
	case "input":
		return harness.NewTextInput(spec.Text), nil
	case "box", "expand":
		box := harness.NewSizedBox(spec.Width, spec.Height)
		if spec.Type == "expand" {
			box = harness.Expand()
		}
		if len(children) == 1 {
			box.WithChild(children[0])
		}
		return box, nil
	default:
		return nil, errors.Errorf("%s: unknown widget type %q", path, spec.Type)
	}
}

func (b *builtTree) pod(spec NodeSpec, path string) (*retained.WidgetPod, error) {
	w, err := b.widget(spec, path)
	if err != nil {
		return nil, err
	}
	classes := spec.Class
	if classes == "" {
		switch spec.Type {
		case "button":
			classes = harness.DefaultButtonClasses
		case "input":
			classes = harness.DefaultTextInputClasses
		}
	}
	var pod *retained.WidgetPod
	if classes != "" {
		pod = harness.StyledPod(w, classes)
	} else {
		pod = retained.NewWidgetPod(w)
	}
	if spec.Disabled {
		b.disabled = append(b.disabled, pod.ID())
	}
	if spec.Stashed {
		b.stashed = append(b.stashed, pod.ID())
	}
	return pod, nil
}

// mount builds a harness around the tree and applies the initial flags.
func (b *builtTree) mount(opts retained.Options) *harness.TestHarness {
	h := harness.New(b.root, harness.WithOptions(opts))
	for _, id := range b.disabled {
		h.Edit(id, func(ctx *retained.MutateCtx) { ctx.SetDisabled(true) })
	}
	for _, id := range b.stashed {
		h.Edit(id, func(ctx *retained.MutateCtx) { ctx.SetStashed(true) })
	}
	return h
}
