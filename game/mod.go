package game

// Move is the column a disc is dropped into.
type Move int

// NoMove is the move of a search root, which was not reached by any move.
const NoMove Move = -1

type Player int

const (
	First Player = iota
	Second
)

func (p Player) Opponent() Player {
	if p == First {
		return Second
	}
	return First
}

// Disc returns the cell value a placement by p leaves on the board.
func (p Player) Disc() Cell {
	if p == First {
		return FirstDisc
	}
	return SecondDisc
}

func (p Player) String() string {
	if p == First {
		return "first"
	}
	return "second"
}

// ParsePlayer accepts the names used on the command line and in config files.
func ParsePlayer(name string) (Player, bool) {
	switch name {
	case "first", "1", "yellow":
		return First, true
	case "second", "2", "red":
		return Second, true
	}
	return First, false
}

type Cell uint8

const (
	Empty Cell = iota
	FirstDisc
	SecondDisc
)

// Owner reports the player a non-empty cell belongs to.
func (c Cell) Owner() (Player, bool) {
	switch c {
	case FirstDisc:
		return First, true
	case SecondDisc:
		return Second, true
	}
	return First, false
}

func (c Cell) Rune() rune {
	switch c {
	case FirstDisc:
		return 'X'
	case SecondDisc:
		return 'O'
	}
	return '.'
}

// Result is the outcome of a finished game.
type Result int

const (
	FirstWin Result = iota
	SecondWin
	Draw
)

func WinFor(p Player) Result {
	if p == First {
		return FirstWin
	}
	return SecondWin
}

// Winner returns the winning player, false on a draw.
func (r Result) Winner() (Player, bool) {
	switch r {
	case FirstWin:
		return First, true
	case SecondWin:
		return Second, true
	}
	return First, false
}

func (r Result) String() string {
	switch r {
	case FirstWin:
		return "first wins"
	case SecondWin:
		return "second wins"
	}
	return "draw"
}
