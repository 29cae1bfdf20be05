package core

import (
	"errors"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

var ErrDimensionMismatch = errors.New("core: dimension mismatch")

// Matrix is a dense row-major float64 matrix.
type Matrix struct {
	R, C int
	Data []float64
}

// NewMatrix allocates a zero matrix.
func NewMatrix(r, c int) *Matrix {
	return &Matrix{R: r, C: c, Data: make([]float64, r*c)}
}

// FromColumns creates a Matrix whose j-th column is cols[j] (copies).
// Every column must have length rows.
func FromColumns(rows int, cols [][]float64) (*Matrix, error) {
	m := NewMatrix(rows, len(cols))
	for j, col := range cols {
		if len(col) != rows {
			return nil, ErrDimensionMismatch
		}
		for i, v := range col {
			m.Data[i*m.C+j] = v
		}
	}
	return m, nil
}

func (m *Matrix) Transpose() *Matrix {
	t := NewMatrix(m.C, m.R)
	for i := 0; i < m.R; i++ {
		for j := 0; j < m.C; j++ {
			t.Data[j*t.C+i] = m.Data[i*m.C+j]
		}
	}
	return t
}

// MatMul returns A·B. Rows of the result are split across workers; each
// worker owns a disjoint block of rows so the result is deterministic.
func MatMul(A, B *Matrix) (*Matrix, error) {
	if A.C != B.R {
		return nil, ErrDimensionMismatch
	}

	C := NewMatrix(A.R, B.C)
	workers := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	rowsPerWorker := (A.R + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, A.R)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(rs, re int) {
			defer wg.Done()
			for i := rs; i < re; i++ {
				for k := 0; k < A.C; k++ {
					ai := A.Data[i*A.C+k]
					for j := 0; j < B.C; j++ {
						C.Data[i*C.C+j] += ai * B.Data[k*B.C+j]
					}
				}
			}
		}(start, end)
	}
	wg.Wait()
	return C, nil
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) []float64 {
	v := make([]float64, m.R)
	for i := 0; i < m.R; i++ {
		v[i] = m.Data[i*m.C+j]
	}
	return v
}

// ScaleCol multiplies column j by s in place.
func (m *Matrix) ScaleCol(j int, s float64) {
	for i := 0; i < m.R; i++ {
		m.Data[i*m.C+j] *= s
	}
}

// Dense returns a gonum copy of m.
func (m *Matrix) Dense() *mat.Dense {
	data := make([]float64, len(m.Data))
	copy(data, m.Data)
	return mat.NewDense(m.R, m.C, data)
}

// FromDense copies a gonum matrix into a Matrix.
func FromDense(d mat.Matrix) *Matrix {
	r, c := d.Dims()
	m := NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Data[i*c+j] = d.At(i, j)
		}
	}
	return m
}

// SliceCols returns a copy of the columns [0, k).
func (m *Matrix) SliceCols(k int) *Matrix {
	out := NewMatrix(m.R, k)
	for i := 0; i < m.R; i++ {
		copy(out.Data[i*k:(i+1)*k], m.Data[i*m.C:i*m.C+k])
	}
	return out
}
