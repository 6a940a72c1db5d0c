package tui

import (
	"connectn/game"
	"strings"

	"github.com/muesli/termenv"
)

const (
	firstColor  = "#FAC80A"
	secondColor = "#FA0A0A"
)

// RenderBoard draws board top row first inside a frame, with 1-based column
// numbers below. Discs are coloured when profile supports it.
func RenderBoard(board *game.Board, profile termenv.Profile) string {
	var sb strings.Builder
	for row := 0; row < board.Rows(); row++ {
		sb.WriteByte('|')
		for column := 0; column < board.Columns(); column++ {
			sb.WriteString(renderCell(board.At(row, column), profile))
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(columnLabels(board.Columns()))
	return sb.String()
}

func renderCell(cell game.Cell, profile termenv.Profile) string {
	disc := string(cell.Rune())
	owner, ok := cell.Owner()
	if !ok {
		return " "
	}
	return profile.String(disc).Foreground(profile.Color(discColor(owner))).Bold().String()
}

func discColor(p game.Player) string {
	if p == game.First {
		return firstColor
	}
	return secondColor
}

// Labels past 9 only show their last digit to keep the grid aligned.
func columnLabels(columns int) string {
	var sb strings.Builder
	sb.WriteByte(' ')
	for column := 1; column <= columns; column++ {
		sb.WriteByte(byte('0' + column%10))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// renderCursor marks the column the next disc drops into.
func renderCursor(cursor, columns int, disc string) string {
	return strings.Repeat(" ", 2*cursor+1) + disc + strings.Repeat(" ", 2*(columns-cursor)-1) + "\n"
}
