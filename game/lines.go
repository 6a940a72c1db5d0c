package game

// HasLineOfN reports whether toWin or more equal discs are connected along a
// row, a column or one of the two diagonal directions.
func (b *Board) HasLineOfN() bool {
	return b.LineOwner() != Empty
}

// LineOwner returns the disc of the first winning line found, or Empty.
func (b *Board) LineOwner() Cell {
	if owner := b.scanRows(); owner != Empty {
		return owner
	}
	if owner := b.scanColumns(); owner != Empty {
		return owner
	}
	if owner := b.scanDiagonals(); owner != Empty {
		return owner
	}
	return b.scanAntiDiagonals()
}

// runLength counts equal discs starting at (row, column) and stepping by
// (dRow, dColumn) until the run breaks or leaves the grid.
func (b *Board) runLength(row, column, dRow, dColumn int) int {
	origin := b.cells[b.index(row, column)]
	length := 1
	r, c := row+dRow, column+dColumn
	for r >= 0 && r < b.rows && c >= 0 && c < b.columns && b.cells[b.index(r, c)] == origin {
		length++
		r += dRow
		c += dColumn
	}
	return length
}

func (b *Board) scanRows() Cell {
	for row := 0; row < b.rows; row++ {
		for column := 0; column < b.columns; column++ {
			cell := b.cells[b.index(row, column)]
			if cell == Empty {
				continue
			}
			length := b.runLength(row, column, 0, 1)
			if length >= b.toWin {
				return cell
			}
			column += length - 1
		}
	}
	return Empty
}

func (b *Board) scanColumns() Cell {
	for column := 0; column < b.columns; column++ {
		for row := 0; row < b.rows; row++ {
			cell := b.cells[b.index(row, column)]
			if cell == Empty {
				continue
			}
			length := b.runLength(row, column, 1, 0)
			if length >= b.toWin {
				return cell
			}
			row += length - 1
		}
	}
	return Empty
}

// scanDiagonals walks the top-left to bottom-right diagonals, one per
// constant row-column.
func (b *Board) scanDiagonals() Cell {
	for diff := -b.columns + 1; diff < b.rows; diff++ {
		for row := max(0, diff); row < min(b.rows, b.columns+diff); row++ {
			column := row - diff
			cell := b.cells[b.index(row, column)]
			if cell == Empty {
				continue
			}
			length := b.runLength(row, column, 1, 1)
			if length >= b.toWin {
				return cell
			}
			row += length - 1
		}
	}
	return Empty
}

// scanAntiDiagonals walks the top-right to bottom-left diagonals, one per
// constant row+column.
func (b *Board) scanAntiDiagonals() Cell {
	for sum := 0; sum < b.rows+b.columns-1; sum++ {
		for row := max(0, sum-b.columns+1); row < min(b.rows, sum+1); row++ {
			column := sum - row
			cell := b.cells[b.index(row, column)]
			if cell == Empty {
				continue
			}
			length := b.runLength(row, column, 1, -1)
			if length >= b.toWin {
				return cell
			}
			row += length - 1
		}
	}
	return Empty
}
