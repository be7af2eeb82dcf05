package chart

import "errors"

var (
	// ErrTooFewPoints is returned when a series has fewer than two abscissa values.
	ErrTooFewPoints = errors.New("series needs at least two points")
	// ErrLengthMismatch is returned when a line's values do not line up with the abscissa.
	ErrLengthMismatch = errors.New("line length does not match abscissa")
	// ErrNotIncreasing is returned when the abscissa is not strictly increasing.
	ErrNotIncreasing = errors.New("abscissa is not strictly increasing")
	// ErrDuplicateLine is returned when two lines share an identifier.
	ErrDuplicateLine = errors.New("duplicate line id")
	// ErrUnknownLine is returned when a line identifier is not part of the series.
	ErrUnknownLine = errors.New("unknown line id")
	// ErrInvalidViewport is returned for windows outside [0,1] or with start >= end.
	ErrInvalidViewport = errors.New("invalid viewport")
)
