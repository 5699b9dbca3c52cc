package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodePool_AcquireReturnsEmptyNode(t *testing.T) {
	pool := newNodePool(0)
	id := pool.acquire()

	n := pool.nodes[id]
	assert.Equal(t, nodeEmpty, n.kind)
	assert.Equal(t, -1, n.mapping)
	assert.Equal(t, noNode, n.left)
	assert.Equal(t, noNode, n.right)
	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, 1, pool.InUse())
}

func TestNodePool_ReleaseRecyclesStorage(t *testing.T) {
	pool := newNodePool(0)
	a := pool.acquire()
	pool.nodes[a].kind = nodeLeaf
	pool.nodes[a].mapping = 7
	pool.release(a)

	require.Equal(t, 1, pool.Free())

	b := pool.acquire()
	assert.Equal(t, a, b, "released slot should be handed out again")
	assert.Equal(t, 1, pool.Len(), "no new storage should be created")
	assert.Equal(t, nodeEmpty, pool.nodes[b].kind)
	assert.Equal(t, -1, pool.nodes[b].mapping)
}

func TestNodePool_ReleaseTree(t *testing.T) {
	pool := newNodePool(0)
	root := pool.acquire()
	left := pool.acquire()
	right := pool.acquire()
	grandchild := pool.acquire()
	pool.nodes[root].left = left
	pool.nodes[root].right = right
	pool.nodes[left].left = grandchild

	pool.releaseTree(root)

	assert.Equal(t, 4, pool.Free())
	assert.Equal(t, 0, pool.InUse())
}

func TestNodePool_ReleaseNoNodeIsNoop(t *testing.T) {
	pool := newNodePool(0)
	pool.release(noNode)
	pool.releaseTree(noNode)
	assert.Equal(t, 0, pool.Free())
}
