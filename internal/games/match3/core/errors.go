package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for any grid access outside its extent.
	ErrOutOfBounds = errors.New("match3: coordinate out of bounds")

	// ErrBoardUnsatisfiable is returned when the populator cannot find a
	// piece type that avoids a match within the retry cap.
	ErrBoardUnsatisfiable = errors.New("match3: board unsatisfiable")

	// ErrInvalidConfig is returned for board options that cannot work.
	ErrInvalidConfig = errors.New("match3: invalid configuration")

	// ErrUnsettled is returned by Verify for a board that is not settled.
	ErrUnsettled = errors.New("match3: board not settled")
)

// OutOfBoundsError describes a coordinate outside the grid.
type OutOfBoundsError struct {
	At     Coord
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("match3: coordinate %s outside %dx%d grid", e.At, e.Width, e.Height)
}

// Unwrap allows errors.Is(err, ErrOutOfBounds).
func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// UnsatisfiableError describes a populator retry cap being exceeded.
type UnsatisfiableError struct {
	At          Coord
	Rolls       int
	PaletteSize int
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("match3: no piece type fits cell %s after %d rolls (palette of %d)",
		e.At, e.Rolls, e.PaletteSize)
}

// Unwrap allows errors.Is(err, ErrBoardUnsatisfiable).
func (e *UnsatisfiableError) Unwrap() error {
	return ErrBoardUnsatisfiable
}
