package searcher

import (
	"connectn/game"
	"fmt"
	"math"
)

// selectLeaf descends from the root to the leaf of one iteration, playing the
// moves along the path onto board. It stops at a terminal node or after
// expanding one new child. moves is scratch space for legal moves.
func (t *tree) selectLeaf(board *game.Board, moves []game.Move) (leaf int32, depth int) {
	current := rootIndex
	for {
		n := &t.nodes[current]
		if n.terminal {
			return current, depth
		}

		moves = board.AppendLegalMoves(moves[:0])
		if len(n.children) < len(moves) { // Expandable node
			return t.expand(current, board, moves), depth + 1
		}

		// Fully expanded node
		child := t.pickChild(current)
		board.Place(t.nodes[child].move, n.toMove)
		current = child
		depth++
	}
}

// expand adds a child for the first legal move, in ascending order, that has
// none yet and plays that move onto board.
func (t *tree) expand(parent int32, board *game.Board, moves []game.Move) int32 {
	toMove := t.nodes[parent].toMove
	for _, move := range moves {
		if t.hasChild(parent, move) {
			continue
		}
		if !board.Place(move, toMove) {
			panic(fmt.Sprintf("legal move %d could not be placed", move))
		}
		return t.addChild(parent, move, board.HasLineOfN() || board.IsFull())
	}
	panic("node has no unexpanded moves")
}

// pickChild returns the child with the highest UCT value. The first child in
// expansion order wins ties.
func (t *tree) pickChild(parent int32) int32 {
	n := &t.nodes[parent]
	if len(n.children) == 0 {
		panic("node has no children")
	}

	policy := newUCT(CSquared, float64(n.visits))
	best := n.children[0]
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		c := &t.nodes[child]
		if score := policy.evaluate(c.rewards, float64(c.visits)); score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// backup records the playout result on every node from leaf up to the root.
func (t *tree) backup(leaf int32, result game.Result) {
	for index := leaf; index != noParent; index = t.nodes[index].parent {
		n := &t.nodes[index]
		n.visits++
		n.rewards += reward(result, n.toMove)
	}
}

// mostVisited returns the child with the most visits. The first one listed
// wins ties.
func mostVisited(children []ChildStats) ChildStats {
	if len(children) == 0 {
		panic("node has no children")
	}

	best := children[0]
	for _, child := range children[1:] {
		if child.Visits > best.Visits {
			best = child
		}
	}
	return best
}
