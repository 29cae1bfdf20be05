package model

import "electviz/pkg/core"

// Transformer is for projection steps (fit on one matrix, transform any
// matrix with the same columns).
type Transformer interface {
	Fit(X *core.Matrix) error
	Transform(X *core.Matrix) (*core.Matrix, error)
}

var _ Transformer = (*PCA)(nil)

// FitTransform fits tr on X and returns X transformed.
func FitTransform(tr Transformer, X *core.Matrix) (*core.Matrix, error) {
	if err := tr.Fit(X); err != nil {
		return nil, err
	}
	return tr.Transform(X)
}
