package index

import "gig-discovery/internal/models"

// AVLTree is a self-balancing binary search tree keyed by a numeric ranking
// score. In-order traversal yields gigs in ascending score order; duplicate
// keys go right.
type AVLTree struct {
	root *avlNode
	size int
}

type avlNode struct {
	key    float64
	gig    models.GigRecord
	left   *avlNode
	right  *avlNode
	height int
}

// NewAVLTree creates an empty tree.
func NewAVLTree() *AVLTree {
	return &AVLTree{}
}

// Insert adds a gig under the given ranking key and rebalances the
// insertion path.
func (t *AVLTree) Insert(key float64, gig models.GigRecord) {
	t.root = insert(t.root, key, gig)
	t.size++
}

// Size returns the number of stored entries.
func (t *AVLTree) Size() int {
	return t.size
}

// InOrder returns all gigs in ascending key order.
func (t *AVLTree) InOrder() []models.GigRecord {
	out := make([]models.GigRecord, 0, t.size)
	inOrder(t.root, &out)
	return out
}

// InOrderDescending returns all gigs in descending key order, i.e. the
// fully ranked gig list best-first.
func (t *AVLTree) InOrderDescending() []models.GigRecord {
	asc := t.InOrder()
	for i, j := 0, len(asc)-1; i < j; i, j = i+1, j-1 {
		asc[i], asc[j] = asc[j], asc[i]
	}
	return asc
}

func insert(node *avlNode, key float64, gig models.GigRecord) *avlNode {
	if node == nil {
		return &avlNode{key: key, gig: gig, height: 1}
	}

	if key < node.key {
		node.left = insert(node.left, key, gig)
	} else {
		node.right = insert(node.right, key, gig)
	}

	node.height = 1 + max(height(node.left), height(node.right))
	return rebalance(node)
}

func rebalance(node *avlNode) *avlNode {
	switch bf := balanceFactor(node); {
	case bf > 1:
		// left-heavy
		if balanceFactor(node.left) < 0 {
			node.left = rotateLeft(node.left)
		}
		return rotateRight(node)
	case bf < -1:
		// right-heavy
		if balanceFactor(node.right) > 0 {
			node.right = rotateRight(node.right)
		}
		return rotateLeft(node)
	default:
		return node
	}
}

func rotateRight(y *avlNode) *avlNode {
	x := y.left
	y.left = x.right
	x.right = y

	y.height = 1 + max(height(y.left), height(y.right))
	x.height = 1 + max(height(x.left), height(x.right))
	return x
}

func rotateLeft(x *avlNode) *avlNode {
	y := x.right
	x.right = y.left
	y.left = x

	x.height = 1 + max(height(x.left), height(x.right))
	y.height = 1 + max(height(y.left), height(y.right))
	return y
}

func height(node *avlNode) int {
	if node == nil {
		return 0
	}
	return node.height
}

func balanceFactor(node *avlNode) int {
	if node == nil {
		return 0
	}
	return height(node.left) - height(node.right)
}

func inOrder(node *avlNode, out *[]models.GigRecord) {
	if node == nil {
		return
	}
	inOrder(node.left, out)
	*out = append(*out, node.gig)
	inOrder(node.right, out)
}
