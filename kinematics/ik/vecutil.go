package ik

import "math"

// vecToSlice extracts a mat.VecDense's elements as a plain slice without assuming the backing
// array has no stride, since RawVector().Data can be longer than Len() for a non-owned view.
type rawVec interface {
	Len() int
	AtVec(int) float64
}

func vecToSlice(v rawVec) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// clampNorm scales v in place so its Euclidean norm does not exceed max (a max <= 0 disables
// clamping).
func clampNorm(v []float64, max float64) {
	if max <= 0 {
		return
	}
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	norm := math.Sqrt(sumSq)
	if norm <= max {
		return
	}
	scale := max / norm
	for i := range v {
		v[i] *= scale
	}
}

// clampMaxAbs scales v in place, preserving direction, so its largest-magnitude component does
// not exceed max (a max <= 0 disables clamping). This is SDLSSolver's overall step clamp, which
// bounds the largest joint displacement rather than the step's Euclidean length.
func clampMaxAbs(v []float64, max float64) {
	if max <= 0 {
		return
	}
	var peak float64
	for _, x := range v {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}
	if peak <= max {
		return
	}
	scale := max / peak
	for i := range v {
		v[i] *= scale
	}
}
