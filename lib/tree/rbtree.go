package tree

import (
	"iter"
	"sync"

	"go.uber.org/zap"

	"github.com/benz9527/xrbtree/lib/infra"
	"github.com/benz9527/xrbtree/xlog"
)

var _ RBTree[uint8] = (*rbTree[uint8])(nil)

type rbTree[K infra.OrderedKey] struct {
	root   *rbNode[K]
	count  int64
	logger xlog.XLogger
	stats  *rbTreeStats
}

func (tree *rbTree[K]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K]) Root() RBNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K]) leftRotate(x *rbNode[K]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p := x.right
	if x == tree.root {
		tree.root = p
	}
	x.moveDown(p)

	x.right = p.left
	if p.left != nil {
		p.left.parent = x
	}
	p.left = x
	tree.stats.IncreaseRotateCount("left")
}

/*
		     |                         |
		     X                         S
		    / \    rightRotate(X)     / \
		   S   R   ============>    Sd   X
		  / \                           / \
		Sd   Sc                        Sc   R
*/
func (tree *rbTree[K]) rightRotate(x *rbNode[K]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p := x.left
	if x == tree.root {
		tree.root = p
	}
	x.moveDown(p)

	x.left = p.right
	if p.right != nil {
		p.right.parent = x
	}
	p.right = x
	tree.stats.IncreaseRotateCount("right")
}

// search returns the node of key, or the last visited node
// which is the parent of the insertion point.
func (tree *rbTree[K]) search(key K) *rbNode[K] {
	aux := tree.root
	for aux != nil {
		res := infra.KeyCompare(key, aux.key)
		if /* equal */ res == 0 {
			break
		} else /* less */ if res < 0 {
			if aux.left == nil {
				break
			}
			aux = aux.left
		} else /* greater */ {
			if aux.right == nil {
				break
			}
			aux = aux.right
		}
	}
	return aux
}

func (tree *rbTree[K]) lookup(key K) *rbNode[K] {
	if x := tree.search(key); x != nil && x.key == key {
		return x
	}
	return nil
}

// i1: Empty rbtree, insert directly, but root node is painted to black.
func (tree *rbTree[K]) Insert(key K) bool {
	if /* i1 */ tree.root == nil {
		tree.root = &rbNode[K]{
			key:   key,
			color: Black,
		}
		tree.count++
		tree.stats.IncreaseInsertCount()
		tree.stats.RecordKeyCount(1)
		return true
	}

	y := tree.search(key)
	res := infra.KeyCompare(key, y.key)
	if /* equal */ res == 0 {
		tree.logger.Debug("[rbtree] duplicate key ignored", zap.Any("key", key))
		return false
	}

	z := &rbNode[K]{
		key:    key,
		color:  Red,
		parent: y,
	}
	if /* less */ res < 0 {
		y.left = z
	} else /* greater */ {
		y.right = z
	}

	tree.count++
	tree.stats.IncreaseInsertCount()
	tree.stats.RecordKeyCount(1)
	tree.insertRebalance(z)
	return true
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X is the root, repaint it into black.

im2: Current node X's parent P is black, hold p3 and p4.

im3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Loop to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
X becomes the pivot, enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Current node is the same direction as parent.
Rotate G, swap the colors of the pivot and G.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[K]) insertRebalance(x *rbNode[K]) {
	steps := int64(0)
	defer func() {
		tree.stats.RecordRebalanceSteps("insert", steps)
	}()

	for x != nil {
		steps++
		if /* im1 */ x.isRoot() {
			x.color = Black
			return
		}

		p := x.parent
		if /* im2 */ p.isBlack() {
			return
		}

		// The red parent is never the root, so the grandpa exists.
		g := p.parent
		if g == nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] red parent without grandpa")
		}

		if /* im3 */ u := x.uncle(); u.isRed() {
			p.color = Black
			u.color = Black
			g.color = Red
			x = g
			continue
		}

		if p.isLeftChild() {
			if /* im4 */ !x.isLeftChild() {
				tree.leftRotate(p)
				x, p = p, x
			}
			/* im5 */
			tree.rightRotate(g)
		} else {
			if /* im4 */ x.isLeftChild() {
				tree.rightRotate(p)
				x, p = p, x
			}
			/* im5 */
			tree.leftRotate(g)
		}
		p.color, g.color = g.color, p.color
		return
	}
}

func (tree *rbTree[K]) Delete(key K) error {
	if tree.root == nil {
		return ErrRBTreeEmpty
	}
	z := tree.lookup(key)
	if z == nil {
		tree.logger.Debug("[rbtree] key not found to delete", zap.Any("key", key))
		return ErrRBTreeKeyNotFound
	}
	tree.removeNode(z)
	return nil
}

func (tree *rbTree[K]) DeleteMin() (K, error) {
	if tree.root == nil {
		return *new(K), ErrRBTreeEmpty
	}
	_min := tree.root.minimum()
	key := _min.key
	tree.removeNode(_min)
	return key, nil
}

/*
r1: Current node Z has left and right node.
Find node Z's succ S to replace it to be removed.
Swap the key only, Z keeps its identity and color.
The succ has no left child.

	  |                    |
	  Z                    S
	 / \                  / \
	L  ..   swap(Z, S)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                Z  ..

r2: Current node Z contains a single child node.
The child node must be red and Z must be black. (See conclusion)
Splice the child into Z's position and repaint it into black.

r3: (1) Current node Z is a red leaf node, remove directly.

r3: (2) Current node Z is a black leaf node (not root).
(black-violation)
Z stays linked as the double-black placeholder while rebalancing,
then it is unlinked.

r4: Current node Z is the root and a leaf, the tree becomes empty.
*/
func (tree *rbTree[K]) removeNode(z *rbNode[K]) {
	tree.count--
	tree.stats.IncreaseRemoveCount()
	tree.stats.RecordKeyCount(-1)

	if /* r1 */ z.left != nil && z.right != nil {
		succ := z.right.minimum()
		z.key = succ.key
		z = succ
	}

	var child *rbNode[K]
	if z.left != nil {
		child = z.left
	} else {
		child = z.right
	}

	if /* r2 */ child != nil {
		if z.isRoot() {
			tree.root = child
		} else if z.isLeftChild() {
			z.parent.left = child
		} else {
			z.parent.right = child
		}
		child.parent = z.parent

		if z.isBlack() {
			if child.isRed() {
				child.color = Black
			} else {
				tree.removeRebalance(child)
			}
		}
		z.parent, z.left, z.right = nil, nil, nil
		return
	}

	if /* r4 */ z.isRoot() {
		tree.root = nil
		return
	}

	if /* r3 (2) */ z.isBlack() {
		tree.removeRebalance(z)
	}

	// r3 (1) or the placeholder after rebalance.
	if z.isLeftChild() {
		z.parent.left = nil
	} else {
		z.parent.right = nil
	}
	z.parent = nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node. (near nephew)
Sd is the opposite direction to X and it X's sibling's child node. (far nephew)

rm0: Current node X has no sibling S, push the deficit up to the parent P.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
(1) repaint S into black, P into red.
(2) X is left node of P, left rotate P; X is right node of P, right rotate P.
Retry with the new black sibling.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [D]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: Current node X's parent P is red, the sibling S, nephew node Sc and Sd
is black.
Repaint S into red and P into black.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: All of current node X's parent P, the sibling S, nephew node Sc and Sd
are black.
Paint the S into red to satisfy p4 locally. Then loop to handle P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: Current node X's sibling S is black, nephew node Sc is red and Sd
is black. Ignore X's parent P's color (red or black is okay)
(1) If X is left node of P, right rotate S.
(2) If X is right node of P, left rotate S.
(3) Repaint S into red, Sc into black
Enter into rm5 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: Current node X's sibling S is black, nephew node Sd is red.
Ignore X's parent P's color (red or black is okay)
(1) If X is left node of P, left rotate P.
(2) If X is right node of P, right rotate P.
(3) S takes P's color, P into black.
(4) Repaint Sd into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K]) removeRebalance(x *rbNode[K]) {
	steps := int64(0)
	defer func() {
		tree.stats.RecordRebalanceSteps("remove", steps)
	}()

	for !x.isRoot() {
		steps++
		p := x.parent
		sibling := x.sibling()
		if /* rm0 */ sibling == nil {
			x = p
			continue
		}

		isLeft := x.isLeftChild()
		if /* rm1 */ sibling.isRed() {
			sibling.color = Black
			p.color = Red
			if isLeft {
				tree.leftRotate(p)
			} else {
				tree.rightRotate(p)
			}
			continue
		}

		if !sibling.hasRedChild() {
			sibling.color = Red
			if /* rm2 */ p.isRed() {
				p.color = Black
				return
			}
			/* rm3 */
			x = p
			continue
		}

		var sc, sd *rbNode[K]
		if isLeft {
			sc, sd = sibling.left, sibling.right
		} else {
			sc, sd = sibling.right, sibling.left
		}

		if /* rm4 */ sd.isBlack() {
			sc.color = Black
			sibling.color = Red
			if isLeft {
				tree.rightRotate(sibling)
			} else {
				tree.leftRotate(sibling)
			}
			sibling, sd = sc, sibling
		}

		/* rm5 */
		if isLeft {
			tree.leftRotate(p)
		} else {
			tree.rightRotate(p)
		}
		sibling.color = p.color
		p.color = Black
		sd.color = Black
		return
	}
}

func (tree *rbTree[K]) Search(key K) (RBNode[K], bool) {
	if x := tree.lookup(key); x != nil {
		return x, true
	}
	return nil, false
}

func (tree *rbTree[K]) Contains(key K) bool {
	return tree.lookup(key) != nil
}

func (tree *rbTree[K]) Minimum() (K, error) {
	if tree.root == nil {
		return *new(K), ErrRBTreeEmpty
	}
	return tree.root.minimum().key, nil
}

func (tree *rbTree[K]) Maximum() (K, error) {
	if tree.root == nil {
		return *new(K), ErrRBTreeEmpty
	}
	return tree.root.maximum().key, nil
}

func (tree *rbTree[K]) Successor(key K) (K, error) {
	if tree.root == nil {
		return *new(K), ErrRBTreeEmpty
	}
	x := tree.lookup(key)
	if x == nil {
		return *new(K), ErrRBTreeKeyNotFound
	}
	if x = x.succ(); x == nil {
		return *new(K), ErrRBTreeNoSuccessor
	}
	return x.key, nil
}

func (tree *rbTree[K]) Predecessor(key K) (K, error) {
	if tree.root == nil {
		return *new(K), ErrRBTreeEmpty
	}
	x := tree.lookup(key)
	if x == nil {
		return *new(K), ErrRBTreeKeyNotFound
	}
	if x = x.pred(); x == nil {
		return *new(K), ErrRBTreeNoPredecessor
	}
	return x.key, nil
}

// Inorder traversal by an explicit stack, the stack depth is bounded
// by the tree height.
func (tree *rbTree[K]) Inorder() iter.Seq[K] {
	return func(yield func(K) bool) {
		stack := make([]*rbNode[K], 0, 32)
		defer func() {
			clear(stack)
		}()

		for aux := tree.root; aux != nil || len(stack) > 0; {
			if aux != nil {
				stack = append(stack, aux)
				aux = aux.left
				continue
			}
			aux = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(aux.key) {
				return
			}
			aux = aux.right
		}
	}
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K]) Foreach(action func(idx int64, color RBColor, key K) bool) {
	size := tree.count
	aux := tree.root
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

func (tree *rbTree[K]) Release() {
	aux := tree.root
	tree.root = nil
	if aux == nil {
		return
	}

	stack := make([]*rbNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		r := aux.right
		aux.left, aux.right, aux.parent = nil, nil, nil
		tree.count--
		tree.stats.RecordKeyCount(-1)
		for aux = r; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func NewRBTree[K infra.OrderedKey](opts ...RBTreeOpt) RBTree[K] {
	options := &rbTreeOptions{}
	for _, o := range opts {
		if o != nil {
			o(options)
		}
	}
	if options.logger == nil {
		options.logger = xlog.NewNopXLogger()
	}

	tree := &rbTree[K]{
		logger: options.logger.Named("rbtree"),
	}
	if options.isStatsEnabled {
		tree.stats = newRBTreeStats(options.statsName, options.meterProvider)
	}

	if options.isRWLockEnabled {
		return &rbTreeDelegator[K]{
			rwmu: &sync.RWMutex{},
			impl: tree,
		}
	}
	return tree
}
