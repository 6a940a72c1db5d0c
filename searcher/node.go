package searcher

import "connectn/game"

const (
	rootIndex int32 = 0
	noParent  int32 = -1
)

// node holds the statistics of one state reached from the root. rewards is a
// running sum scored against toMove, the player who moves next from here.
type node struct {
	parent   int32
	children []int32 // In expansion order
	move     game.Move
	toMove   game.Player
	terminal bool
	visits   int
	rewards  float64
}

// tree is an arena of nodes addressed by index. Appending may move the
// backing array, so never keep a *node across addChild.
type tree struct {
	nodes []node
}

func newTree(toMove game.Player, capacity int) *tree {
	t := &tree{nodes: make([]node, 0, capacity)}
	t.nodes = append(t.nodes, node{
		parent: noParent,
		move:   game.NoMove,
		toMove: toMove,
	})
	return t
}

func (t *tree) addChild(parent int32, move game.Move, terminal bool) int32 {
	index := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		parent:   parent,
		move:     move,
		toMove:   t.nodes[parent].toMove.Opponent(),
		terminal: terminal,
	})
	t.nodes[parent].children = append(t.nodes[parent].children, index)
	return index
}

func (t *tree) hasChild(parent int32, move game.Move) bool {
	for _, child := range t.nodes[parent].children {
		if t.nodes[child].move == move {
			return true
		}
	}
	return false
}

func (t *tree) size() int {
	return len(t.nodes)
}

// rootStats returns the statistics of the root's children in expansion order.
func (t *tree) rootStats() []ChildStats {
	root := &t.nodes[rootIndex]
	stats := make([]ChildStats, 0, len(root.children))
	for _, child := range root.children {
		c := &t.nodes[child]
		stats = append(stats, ChildStats{Move: c.move, Visits: c.visits, Rewards: c.rewards})
	}
	return stats
}
