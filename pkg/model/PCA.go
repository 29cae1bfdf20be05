package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"electviz/pkg/core"
	"electviz/pkg/stats"
)

var (
	ErrInvalidComponents = errors.New("model: invalid number of components")
	ErrZeroVariance      = errors.New("model: column has zero variance")
	ErrNonFinite         = errors.New("model: input contains missing or non-finite values")
	ErrNotFitted         = errors.New("model: PCA is not fitted")
	ErrSVDFailed         = errors.New("model: singular value decomposition failed")
)

// Option configures a PCA.
type Option func(*PCA)

// WithNonFinite lets constant columns and missing values flow through as
// NaN scores instead of failing the fit.
func WithNonFinite(allow bool) Option {
	return func(p *PCA) { p.AllowNonFinite = allow }
}

// PCA projects standardised data onto its top K right singular vectors.
type PCA struct {
	K              int
	AllowNonFinite bool

	Means []float64
	Stds  []float64 // sample (n-1) standard deviations
	// Singular holds every singular value of the standardised matrix,
	// largest first.
	Singular []float64
	// Components is d x K; column k is the k-th right singular vector.
	Components *core.Matrix
}

// NewPCA creates and returns a new PCA model.
func NewPCA(k int, opts ...Option) *PCA {
	p := &PCA{K: k}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Fit standardises each column of X (rows are observations) and computes
// the thin SVD of the result, keeping the first K right singular vectors.
func (pca *PCA) Fit(X *core.Matrix) error {
	n, d := X.R, X.C
	if pca.K < 1 || pca.K > min(n, d) {
		return fmt.Errorf("%w: k=%d with %d rows and %d columns", ErrInvalidComponents, pca.K, n, d)
	}

	cols := make([][]float64, d)
	for j := range cols {
		cols[j] = X.Col(j)
	}
	z, means, stds := stats.Standardize(cols)
	pca.Means, pca.Stds = means, stds

	finite := true
	for j := range cols {
		if !pca.AllowNonFinite {
			for _, v := range cols[j] {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("%w: column %d", ErrNonFinite, j)
				}
			}
			if stds[j] == 0 || math.IsNaN(stds[j]) {
				return fmt.Errorf("%w: column %d", ErrZeroVariance, j)
			}
		}
		for _, v := range z[j] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				finite = false
			}
		}
	}

	if !finite {
		// Only reachable with AllowNonFinite: the decomposition is undefined,
		// so every score becomes NaN.
		pca.Singular = make([]float64, min(n, d))
		pca.Components = core.NewMatrix(d, pca.K)
		for i := range pca.Singular {
			pca.Singular[i] = math.NaN()
		}
		for i := range pca.Components.Data {
			pca.Components.Data[i] = math.NaN()
		}
		return nil
	}

	Z, err := core.FromColumns(n, z)
	if err != nil {
		return err
	}
	var svd mat.SVD
	if ok := svd.Factorize(Z.Dense(), mat.SVDThin); !ok {
		return ErrSVDFailed
	}
	var v mat.Dense
	svd.VTo(&v)
	pca.Singular = svd.Values(nil)
	pca.Components = core.FromDense(&v).SliceCols(pca.K)
	return nil
}

// Transform standardises X with the fitted moments and projects it onto
// the components. No sign convention is applied.
func (pca *PCA) Transform(X *core.Matrix) (*core.Matrix, error) {
	if pca.Components == nil {
		return nil, ErrNotFitted
	}
	if X.C != len(pca.Means) {
		return nil, fmt.Errorf("%w: got %d columns, fitted on %d", core.ErrDimensionMismatch, X.C, len(pca.Means))
	}

	z := make([][]float64, X.C)
	for j := range z {
		z[j] = stats.Apply(X.Col(j), pca.Means[j], pca.Stds[j])
	}
	Z, err := core.FromColumns(X.R, z)
	if err != nil {
		return nil, err
	}
	return core.MatMul(Z, pca.Components)
}

// ExplainedVarianceRatio returns the share of total variance carried by
// each of the first K components.
func (pca *PCA) ExplainedVarianceRatio() []float64 {
	total := 0.0
	for _, s := range pca.Singular {
		total += s * s
	}
	out := make([]float64, min(pca.K, len(pca.Singular)))
	for i := range out {
		out[i] = pca.Singular[i] * pca.Singular[i] / total
	}
	return out
}
