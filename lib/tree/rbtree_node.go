package tree

import (
	"github.com/benz9527/xrbtree/lib/infra"
)

var _ RBNode[uint8] = (*rbNode[uint8])(nil)

// The parent is a back reference only, the children are owned.
// Absent children are nil, they are considered black.
type rbNode[K infra.OrderedKey] struct {
	parent *rbNode[K]
	left   *rbNode[K]
	right  *rbNode[K]
	key    K
	color  RBColor
}

func (node *rbNode[K]) Color() RBColor {
	return node.color
}

func (node *rbNode[K]) Key() K {
	return node.key
}

func (node *rbNode[K]) Left() RBNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K]) Parent() RBNode[K] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[K]) Right() RBNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K]) isRoot() bool {
	return node != nil && node.parent == nil
}

// The root has no side.
func (node *rbNode[K]) isLeftChild() bool {
	if node.parent == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] root node has no parent edge")
	}
	return node == node.parent.left
}

func (node *rbNode[K]) sibling() *rbNode[K] {
	if node.parent == nil {
		return nil
	}
	if node.isLeftChild() {
		return node.parent.right
	}
	return node.parent.left
}

func (node *rbNode[K]) uncle() *rbNode[K] {
	if node.parent == nil || node.parent.parent == nil {
		return nil
	}
	return node.parent.sibling()
}

func (node *rbNode[K]) hasRedChild() bool {
	return node.left.isRed() || node.right.isRed()
}

/*
moveDown re-parents X under its child C. The edge that pointed
at X from P is rewritten to C.

	  P               P
	  |               |
	  X     ====>     C
	 / \              |
	..  C             X
*/
func (node *rbNode[K]) moveDown(newParent *rbNode[K]) {
	if node.parent != nil {
		if node.isLeftChild() {
			node.parent.left = newParent
		} else {
			node.parent.right = newParent
		}
	}
	newParent.parent = node.parent
	node.parent = newParent
}

func (node *rbNode[K]) minimum() *rbNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K]) maximum() *rbNode[K] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order
func (node *rbNode[K]) pred() *rbNode[K] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (node *rbNode[K]) succ() *rbNode[K] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}
