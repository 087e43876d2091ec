package tree

import (
	"errors"
	"iter"

	"github.com/benz9527/xrbtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

var (
	ErrRBTreeEmpty         = errors.New("[rbtree] there is no element")
	ErrRBTreeKeyNotFound   = errors.New("[rbtree] key not found")
	ErrRBTreeNoSuccessor   = errors.New("[rbtree] key is the maximum, no successor")
	ErrRBTreeNoPredecessor = errors.New("[rbtree] key is the minimum, no predecessor")
)

// RBNode is a read-only handle of a tree node.
// It is valid until the next mutation of the tree. Reading a live handle
// while another goroutine mutates the tree is a data race, the locked
// tree hands out detached copies from Search for that reason.
type RBNode[K infra.OrderedKey] interface {
	Key() K
	Color() RBColor
	Left() RBNode[K]
	Right() RBNode[K]
	Parent() RBNode[K]
}

// RBTree is an ordered set of unique keys.
// It is not thread safe unless it is created with WithRBTreeRWLock.
type RBTree[K infra.OrderedKey] interface {
	Len() int64
	Root() RBNode[K]
	// Insert returns false if the key is present already, the tree is unchanged.
	Insert(key K) bool
	// Delete is a no-op for an absent key and reports ErrRBTreeKeyNotFound.
	Delete(key K) error
	DeleteMin() (K, error)
	Search(key K) (RBNode[K], bool)
	Contains(key K) bool
	Minimum() (K, error)
	Maximum() (K, error)
	// Successor returns the smallest key greater than the stored key.
	Successor(key K) (K, error)
	// Predecessor returns the greatest key less than the stored key.
	Predecessor(key K) (K, error)
	// Inorder returns the keys in ascending order. The sequence is lazy
	// and can be ranged over again.
	Inorder() iter.Seq[K]
	Foreach(action func(idx int64, color RBColor, key K) bool)
	Release()
}
