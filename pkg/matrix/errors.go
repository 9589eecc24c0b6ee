package matrix

import "errors"

var (
	// ErrEmptyAxis is returned when a matrix is created without rows or columns.
	ErrEmptyAxis = errors.New("matrix: axis has no labels")

	// ErrDuplicateLabel is returned when an axis names the same label twice.
	ErrDuplicateLabel = errors.New("matrix: duplicate axis label")

	// ErrUnknownLabel is returned when a row or column name is not on its axis.
	ErrUnknownLabel = errors.New("matrix: unknown label")

	// ErrShapeMismatch is returned when a matrix does not have the axes a caller expects.
	ErrShapeMismatch = errors.New("matrix: axes do not match")

	// ErrRaggedValues is returned when decoded values do not fill rows × cols.
	ErrRaggedValues = errors.New("matrix: values do not match axes")
)
