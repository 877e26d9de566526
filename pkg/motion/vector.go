package motion

import "math"

// MaxAxis is the compile-time upper bound on the number of machine axes.
const MaxAxis = 9

// VectorF is a fixed-arity vector of float32 components, one per axis.
// Components beyond the machine's configured axis count stay zero.
type VectorF [MaxAxis]float32

// VectorI is a fixed-arity vector of int32 components, one per axis.
// Used for absolute positions expressed in step counts.
type VectorI [MaxAxis]int32

// Length returns the Euclidean length over all components.
func (v VectorF) Length() float32 {
	total := float32(0)
	for i := 0; i < MaxAxis; i++ {
		total += v[i] * v[i]
	}
	return float32(math.Sqrt(float64(total)))
}

// Normalize scales the first numAxes components to unit length and returns
// the original length. A zero vector stays zero and returns 0.
func (v *VectorF) Normalize(numAxes int) float32 {
	length := v.Length()
	invLength := float32(0)
	if length > 0 {
		invLength = 1.0 / length
	}
	for i := 0; i < numAxes; i++ {
		v[i] *= invLength
	}
	return length
}

// Sub returns the component-wise difference v - rhs.
func (v VectorF) Sub(rhs VectorF) VectorF {
	var result VectorF
	for i := 0; i < MaxAxis; i++ {
		result[i] = v[i] - rhs[i]
	}
	return result
}

// Add returns the component-wise sum v + rhs.
func (v VectorF) Add(rhs VectorF) VectorF {
	var result VectorF
	for i := 0; i < MaxAxis; i++ {
		result[i] = v[i] + rhs[i]
	}
	return result
}

// Scale returns v with every component multiplied by scalar.
func (v VectorF) Scale(scalar float32) VectorF {
	var result VectorF
	for i := 0; i < MaxAxis; i++ {
		result[i] = v[i] * scalar
	}
	return result
}

// Max returns the largest of the first numAxes components.
func (v VectorF) Max(numAxes int) float32 {
	maxVal := v[0]
	for i := 1; i < numAxes; i++ {
		if v[i] > maxVal {
			maxVal = v[i]
		}
	}
	return maxVal
}

// Min returns the smallest of the first numAxes components.
func (v VectorF) Min(numAxes int) float32 {
	minVal := v[0]
	for i := 1; i < numAxes; i++ {
		if v[i] < minVal {
			minVal = v[i]
		}
	}
	return minVal
}

// Sub returns the component-wise difference v - rhs.
func (v VectorI) Sub(rhs VectorI) VectorI {
	var result VectorI
	for i := 0; i < MaxAxis; i++ {
		result[i] = v[i] - rhs[i]
	}
	return result
}

// Add returns the component-wise sum v + rhs.
func (v VectorI) Add(rhs VectorI) VectorI {
	var result VectorI
	for i := 0; i < MaxAxis; i++ {
		result[i] = v[i] + rhs[i]
	}
	return result
}

// Max returns the largest of the first numAxes components.
func (v VectorI) Max(numAxes int) int32 {
	maxVal := v[0]
	for i := 1; i < numAxes; i++ {
		if v[i] > maxVal {
			maxVal = v[i]
		}
	}
	return maxVal
}

// Min returns the smallest of the first numAxes components.
func (v VectorI) Min(numAxes int) int32 {
	minVal := v[0]
	for i := 1; i < numAxes; i++ {
		if v[i] < minVal {
			minVal = v[i]
		}
	}
	return minVal
}
