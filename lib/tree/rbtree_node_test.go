package tree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRelationTestTree(t *testing.T) *rbTree[int] {
	//	      [10]
	//	      /  \
	//	   [5]    [15]
	//	   / \
	//	 <3> <7>
	tree := newTestRBTree[int]()
	for _, key := range []int{10, 5, 15, 3, 7} {
		require.True(t, tree.Insert(key))
	}
	require.NoError(t, Validate[int](tree))
	require.Equal(t, 10, tree.root.key)
	require.Equal(t, 5, tree.root.left.key)
	require.Equal(t, 15, tree.root.right.key)
	require.Equal(t, 3, tree.root.left.left.key)
	require.Equal(t, 7, tree.root.left.right.key)
	return tree
}

func TestRBNode_Relations(t *testing.T) {
	tree := newRelationTestTree(t)
	n10 := tree.root
	n5, n15 := n10.left, n10.right
	n3, n7 := n5.left, n5.right

	require.True(t, n10.isRoot())
	require.True(t, n3.isLeftChild())
	require.False(t, n7.isLeftChild())
	require.True(t, n5.isLeftChild())
	require.False(t, n15.isLeftChild())
	require.Panics(t, func() {
		n10.isLeftChild()
	})

	require.Nil(t, n10.sibling())
	require.Same(t, n15, n5.sibling())
	require.Same(t, n5, n15.sibling())
	require.Same(t, n7, n3.sibling())

	require.Nil(t, n10.uncle())
	require.Nil(t, n5.uncle())
	require.Same(t, n15, n3.uncle())
	require.Same(t, n15, n7.uncle())

	require.True(t, n5.hasRedChild())
	require.False(t, n15.hasRedChild())
	require.False(t, n3.hasRedChild())
	require.False(t, n10.hasRedChild())

	require.Same(t, n3, n10.minimum())
	require.Same(t, n15, n10.maximum())
	require.Same(t, n10, n7.succ())
	require.Same(t, n5, n3.succ())
	require.Nil(t, n15.succ())
	require.Same(t, n7, n10.pred())
	require.Nil(t, n3.pred())
}

func TestRBNode_MoveDown(t *testing.T) {
	p := &rbNode[int]{key: 2}
	x := &rbNode[int]{key: 1, parent: p}
	p.left = x
	c := &rbNode[int]{key: 0}

	x.moveDown(c)
	require.Same(t, c, p.left)
	require.Same(t, p, c.parent)
	require.Same(t, c, x.parent)

	// Moving the root down leaves no parent edge to rewrite.
	root := &rbNode[int]{key: 5}
	r := &rbNode[int]{key: 6, parent: root}
	root.right = r
	root.moveDown(r)
	require.Nil(t, r.parent)
	require.Same(t, r, root.parent)
}

func TestRbtreeLeftAndRightRotate(t *testing.T) {
	tree := newRelationTestTree(t)
	keys := slices.Collect(tree.Inorder())
	n10, n15 := tree.root, tree.root.right

	//	     [10]                  [15]
	//	     /  \    l-rotate     /
	//	   [5]  [15]  =====>    [10]
	//	   / \                  /
	//	 <3> <7>              [5]
	//	                      / \
	//	                    <3> <7>
	tree.leftRotate(n10)
	require.Same(t, n15, tree.root)
	require.Nil(t, n15.parent)
	require.Same(t, n10, n15.left)
	require.Same(t, n15, n10.parent)
	require.Nil(t, n10.right)
	require.NoError(t, LinkViolationValidate[int](tree))
	require.NoError(t, OrderViolationValidate[int](tree))
	require.Equal(t, keys, slices.Collect(tree.Inorder()))

	tree.rightRotate(n15)
	require.Same(t, n10, tree.root)
	require.Same(t, n15, n10.right)
	require.Nil(t, n15.left)
	require.NoError(t, Validate[int](tree))

	// Inner subtree changes sides.
	n5 := n10.left
	n7 := n5.right
	tree.leftRotate(n5)
	require.Same(t, n7, n10.left)
	require.Same(t, n5, n7.left)
	require.Nil(t, n5.right)
	require.NoError(t, LinkViolationValidate[int](tree))
	require.Equal(t, keys, slices.Collect(tree.Inorder()))

	require.Panics(t, func() {
		tree.rightRotate(n15)
	})
	require.Panics(t, func() {
		tree.leftRotate(nil)
	})
}
