package tree

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/benz9527/xrbtree/lib/infra"
)

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

var (
	errRBTreeRootViolation  = errors.New("[rbtree] root violation")
	errRBTreeRedViolation   = errors.New("[rbtree] red violation")
	errRBTreeBlackViolation = errors.New("[rbtree] black violation")
	errRBTreeOrderViolation = errors.New("[rbtree] order violation")
	errRBTreeLinkViolation  = errors.New("[rbtree] parent link violation")
	errRBTreeSizeViolation  = errors.New("[rbtree] size violation")
)

func isBlack[K infra.OrderedKey](node RBNode[K]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K infra.OrderedKey](node RBNode[K]) bool {
	return node != nil && node.Color() == Red
}

// RootColorValidate checks the root is black and has no parent.
func RootColorValidate[K infra.OrderedKey](tree RBTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Parent() != nil || !isBlack[K](root) {
		return errRBTreeRootViolation
	}
	return nil
}

// Inorder traversal to validate that a red node has no red child.
func RedViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	var aux = tree.Root()
	if aux == nil {
		return nil
	}

	stack := make([]RBNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; isRed[K](aux) {
			if isRed[K](aux.Left()) || isRed[K](aux.Right()) {
				return errRBTreeRedViolation
			}
		}

		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// blackHeight returns the number of black nodes from node (excluded)
// down to any nil leaf, or -1 if the paths disagree.
func blackHeight[K infra.OrderedKey](node RBNode[K]) int {
	if node == nil {
		return 0
	}
	l := blackHeight[K](node.Left())
	if l < 0 {
		return -1
	}
	if node.Left() != nil && isBlack[K](node.Left()) {
		l++
	}
	r := blackHeight[K](node.Right())
	if r < 0 {
		return -1
	}
	if node.Right() != nil && isBlack[K](node.Right()) {
		r++
	}
	if l != r {
		return -1
	}
	return l
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	if blackHeight[K](tree.Root()) < 0 {
		return errRBTreeBlackViolation
	}
	return nil
}

// OrderViolationValidate checks the in-order keys are strictly ascending
// and their number equals the tree size.
func OrderViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	var (
		prev  K
		count int64
		err   error
	)
	for key := range tree.Inorder() {
		if count > 0 && infra.KeyCompare(prev, key) >= 0 {
			err = errRBTreeOrderViolation
			break
		}
		prev = key
		count++
	}
	if err == nil && count != tree.Len() {
		err = errRBTreeSizeViolation
	}
	return err
}

// LinkViolationValidate checks the parent back references of every child.
func LinkViolationValidate[K infra.OrderedKey](tree RBTree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Parent() != nil {
		return errRBTreeLinkViolation
	}

	queue := make([]RBNode[K], 0, 32)
	queue = append(queue, root)
	for len(queue) > 0 {
		aux := queue[0]
		queue = queue[1:]
		for _, child := range [2]RBNode[K]{aux.Left(), aux.Right()} {
			if child == nil {
				continue
			}
			if child.Parent() != aux {
				return errRBTreeLinkViolation
			}
			queue = append(queue, child)
		}
	}
	return nil
}

// Validate runs every rule and combines the violations.
func Validate[K infra.OrderedKey](tree RBTree[K]) error {
	return multierr.Combine(
		RootColorValidate[K](tree),
		RedViolationValidate[K](tree),
		BlackViolationValidate[K](tree),
		OrderViolationValidate[K](tree),
		LinkViolationValidate[K](tree),
	)
}
