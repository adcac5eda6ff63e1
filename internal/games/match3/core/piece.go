package core

// PieceType indexes into the configured palette, [0, PaletteSize).
type PieceType int

// Piece is a typed token occupying one cell.
// Pos is kept in agreement with the grid cell holding the piece.
type Piece struct {
	ID   uint64
	Type PieceType
	Pos  Coord
}
