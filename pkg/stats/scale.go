package stats

// Standardize centres each column to zero mean and scales it to unit
// sample variance. The deviation is used as-is: a constant column divides
// by zero and produces non-finite values. Callers that need to refuse
// such columns inspect the returned stds first.
func Standardize(cols [][]float64) (out [][]float64, means, stds []float64) {
	out = make([][]float64, len(cols))
	means = make([]float64, len(cols))
	stds = make([]float64, len(cols))
	for j, col := range cols {
		means[j], stds[j] = MeanStd(col)
		out[j] = Apply(col, means[j], stds[j])
	}
	return out, means, stds
}

// Apply returns (x - mean) / std element-wise.
func Apply(x []float64, mean, std float64) []float64 {
	z := make([]float64, len(x))
	for i, v := range x {
		z[i] = (v - mean) / std
	}
	return z
}
