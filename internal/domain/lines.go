package domain

// LineKind identifies the orientation of a winning line.
type LineKind string

const (
	LineRow      LineKind = "row"
	LineCol      LineKind = "col"
	LineDiagMain LineKind = "diag-main"
	LineDiagAnti LineKind = "diag-anti"
)

// Line is a completed row, column or diagonal. Index is 0 for diagonals.
type Line struct {
	Kind  LineKind `json:"kind"`
	Index int      `json:"index"`
}

// CompletedLines returns every line of board whose cells are all selected,
// rows first, then columns, then the main and anti diagonals. The free cell
// is not treated as selected. A board that is not size*size has no lines.
func CompletedLines(board []Cell, size int) []Line {
	if size <= 0 || len(board) != size*size {
		return nil
	}
	var lines []Line
	for r := 0; r < size; r++ {
		if lineComplete(board, size, r*size, 1) {
			lines = append(lines, Line{Kind: LineRow, Index: r})
		}
	}
	for c := 0; c < size; c++ {
		if lineComplete(board, size, c, size) {
			lines = append(lines, Line{Kind: LineCol, Index: c})
		}
	}
	if lineComplete(board, size, 0, size+1) {
		lines = append(lines, Line{Kind: LineDiagMain})
	}
	if lineComplete(board, size, size-1, size-1) {
		lines = append(lines, Line{Kind: LineDiagAnti})
	}
	return lines
}

// lineComplete walks size cells from start in steps of stride.
func lineComplete(board []Cell, size, start, stride int) bool {
	for i := 0; i < size; i++ {
		if !board[start+i*stride].Selected {
			return false
		}
	}
	return true
}
