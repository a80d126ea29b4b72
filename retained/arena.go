package retained

import "fmt"

// arenaNode is everything the engine owns for one widget.
type arenaNode struct {
	widget Widget
	state  *WidgetState
	props  Properties
	parent WidgetID
	// children is the registered child list, kept in ChildrenIDs order
	// once the tree-update pass has validated it.
	children []WidgetID
}

// arena stores every widget keyed by id. Nodes never hold pointers to each
// other; parent and child links are ids resolved through the arena.
type arena struct {
	nodes map[WidgetID]*arenaNode
	root  WidgetID
}

func newArena() *arena {
	return &arena{nodes: make(map[WidgetID]*arenaNode)}
}

// insert adds a leaf under parent. parent 0 makes it the root.
func (a *arena) insert(parent, id WidgetID, n *arenaNode) {
	if _, dup := a.nodes[id]; dup {
		panic(fmt.Sprintf("retained: widget %s inserted twice", id))
	}
	n.parent = parent
	a.nodes[id] = n
	if parent == 0 {
		a.root = id
		return
	}
	p := a.find(parent)
	p.children = append(p.children, id)
}

// remove detaches id from its parent and drops it. It does not touch
// descendants; the caller removes those first.
func (a *arena) remove(id WidgetID) *arenaNode {
	n, ok := a.nodes[id]
	if !ok {
		return nil
	}
	if p, ok := a.nodes[n.parent]; ok {
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	delete(a.nodes, id)
	return n
}

func (a *arena) has(id WidgetID) bool {
	_, ok := a.nodes[id]
	return ok
}

// find returns the node for id. A missing id is a programmer error.
func (a *arena) find(id WidgetID) *arenaNode {
	n, ok := a.nodes[id]
	if !ok {
		panic(fmt.Sprintf("retained: widget %s not in tree", id))
	}
	return n
}

// lookup is find without the panic, for ids that crossed an event boundary.
func (a *arena) lookup(id WidgetID) (*arenaNode, bool) {
	n, ok := a.nodes[id]
	return n, ok
}

func (a *arena) parentOf(id WidgetID) (WidgetID, bool) {
	n, ok := a.nodes[id]
	if !ok || n.parent == 0 {
		return 0, false
	}
	return n.parent, true
}

// idPath returns the ids from the root down to id, inclusive. It returns nil
// if id is not in the tree.
func (a *arena) idPath(id WidgetID) []WidgetID {
	if !a.has(id) {
		return nil
	}
	var path []WidgetID
	for cur := id; cur != 0; {
		path = append(path, cur)
		cur = a.nodes[cur].parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// isAncestorOrSelf reports whether anc is id or one of its ancestors.
func (a *arena) isAncestorOrSelf(anc, id WidgetID) bool {
	for cur := id; cur != 0; {
		if cur == anc {
			return true
		}
		n, ok := a.nodes[cur]
		if !ok {
			return false
		}
		cur = n.parent
	}
	return false
}

// walkPre visits the subtree of id in pre-order.
func (a *arena) walkPre(id WidgetID, fn func(n *arenaNode)) {
	n := a.find(id)
	fn(n)
	for _, c := range n.children {
		a.walkPre(c, fn)
	}
}

func (a *arena) len() int { return len(a.nodes) }
