package cypher

// TreeNode links a clause or expression into the clause tree so generic
// walks can reach nested subqueries. Types that own other clauses embed it.
type TreeNode struct {
	parent   TreeMember
	children []TreeMember
}

// TreeMember is implemented by every type embedding TreeNode.
type TreeMember interface {
	treeNode() *TreeNode
}

func (t *TreeNode) treeNode() *TreeNode { return t }

// Parent returns the owning member, or nil for a root.
func (t *TreeNode) Parent() TreeMember { return t.parent }

// Children returns the registered children in insertion order.
func (t *TreeNode) Children() []TreeMember {
	return append([]TreeMember(nil), t.children...)
}

// AddChild registers child under parent. A child that already has a parent
// is detached from it first. Attaching a member under its own descendant is
// ignored.
func AddChild(parent, child TreeMember) {
	if parent == nil || child == nil {
		return
	}
	for m := parent; m != nil; m = m.treeNode().parent {
		if m == child {
			return
		}
	}

	ct := child.treeNode()
	if old := ct.parent; old != nil {
		ot := old.treeNode()
		for i, c := range ot.children {
			if c == child {
				ot.children = append(ot.children[:i], ot.children[i+1:]...)
				break
			}
		}
	}
	ct.parent = parent
	pt := parent.treeNode()
	pt.children = append(pt.children, child)
}

// Root follows parent links to the top-most member.
func Root(m TreeMember) TreeMember {
	for m != nil {
		p := m.treeNode().parent
		if p == nil {
			return m
		}
		m = p
	}
	return nil
}

// Walk visits m and its descendants depth-first in pre-order. When fn returns
// false the children of that member are skipped.
func Walk(m TreeMember, fn func(TreeMember) bool) {
	if m == nil || !fn(m) {
		return
	}
	for _, c := range m.treeNode().children {
		Walk(c, fn)
	}
}
