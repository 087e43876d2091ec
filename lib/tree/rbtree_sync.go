package tree

import (
	"iter"
	"sync"

	"github.com/benz9527/xrbtree/lib/infra"
)

var _ RBTree[uint8] = (*rbTreeDelegator[uint8])(nil)

// rbTreeDelegator serializes the mutations, readers share the read lock.
// Rotations rewrite several links across statements, so no reader may
// run while a mutation is in progress.
type rbTreeDelegator[K infra.OrderedKey] struct {
	rwmu *sync.RWMutex
	impl RBTree[K]
}

func (t *rbTreeDelegator[K]) Len() int64 {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	return t.impl.Len()
}

// Root returns the live root. Walking it races with concurrent writers,
// it is meant for validation once the writers are done.
func (t *rbTreeDelegator[K]) Root() RBNode[K] {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	return t.impl.Root()
}

func (t *rbTreeDelegator[K]) Insert(key K) bool {
	t.rwmu.Lock()
	defer t.rwmu.Unlock()
	return t.impl.Insert(key)
}

func (t *rbTreeDelegator[K]) Delete(key K) error {
	t.rwmu.Lock()
	defer t.rwmu.Unlock()
	return t.impl.Delete(key)
}

func (t *rbTreeDelegator[K]) DeleteMin() (K, error) {
	t.rwmu.Lock()
	defer t.rwmu.Unlock()
	return t.impl.DeleteMin()
}

// Search returns a detached copy of the node, without links.
func (t *rbTreeDelegator[K]) Search(key K) (RBNode[K], bool) {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	node, ok := t.impl.Search(key)
	if !ok {
		return nil, false
	}
	return &rbNode[K]{
		key:   node.Key(),
		color: node.Color(),
	}, true
}

func (t *rbTreeDelegator[K]) Contains(key K) bool {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	return t.impl.Contains(key)
}

func (t *rbTreeDelegator[K]) Minimum() (K, error) {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	return t.impl.Minimum()
}

func (t *rbTreeDelegator[K]) Maximum() (K, error) {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	return t.impl.Maximum()
}

func (t *rbTreeDelegator[K]) Successor(key K) (K, error) {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	return t.impl.Successor(key)
}

func (t *rbTreeDelegator[K]) Predecessor(key K) (K, error) {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	return t.impl.Predecessor(key)
}

// Inorder holds the read lock until the range loop ends.
// The loop body must not mutate the same tree, it deadlocks.
func (t *rbTreeDelegator[K]) Inorder() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.rwmu.RLock()
		defer t.rwmu.RUnlock()
		for key := range t.impl.Inorder() {
			if !yield(key) {
				return
			}
		}
	}
}

func (t *rbTreeDelegator[K]) Foreach(action func(idx int64, color RBColor, key K) bool) {
	t.rwmu.RLock()
	defer t.rwmu.RUnlock()
	t.impl.Foreach(action)
}

func (t *rbTreeDelegator[K]) Release() {
	t.rwmu.Lock()
	defer t.rwmu.Unlock()
	t.impl.Release()
}
