package retained

import "github.com/gogpu/gg"

// AccessRole is the semantic role reported to assistive technology.
type AccessRole uint8

const (
	RoleUnknown AccessRole = iota
	RoleWindow
	RoleGenericContainer
	RoleButton
	RoleLabel
	RoleTextInput
	RoleCheckBox
	RoleScrollView
	RoleImage
	RoleProgressIndicator
)

var roleNames = [...]string{
	"Unknown", "Window", "GenericContainer", "Button", "Label", "TextInput",
	"CheckBox", "ScrollView", "Image", "ProgressIndicator",
}

func (r AccessRole) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "Unknown"
}

// AccessNode is one node of the accessibility tree. The engine fills the
// structural fields; Widget.Accessibility adds label, value and extra
// actions.
type AccessNode struct {
	ID        WidgetID
	Role      AccessRole
	Label     string
	Value     string
	Bounds    Rect
	Transform gg.Matrix
	Children  []WidgetID
	Actions   []AccessAction
	Disabled  bool
	Focusable bool
}

// AddAction appends a if not already present.
func (n *AccessNode) AddAction(a AccessAction) {
	for _, have := range n.Actions {
		if have == a {
			return
		}
	}
	n.Actions = append(n.Actions, a)
}

// TreeUpdate is the incremental accessibility output of one redraw.
// TreeRoot is non-zero only when the whole tree was rebuilt.
type TreeUpdate struct {
	Nodes    []AccessNode
	Focus    WidgetID
	TreeRoot WidgetID
}

// Node returns the node for id, if the update contains it.
func (u TreeUpdate) Node(id WidgetID) (AccessNode, bool) {
	for _, n := range u.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return AccessNode{}, false
}
