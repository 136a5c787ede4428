// Copyright 2012 Luuk van Dijk. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package netcdf3

// Value is a tagged, length-prefixed vector in one of the six NetCDF-3
// element types. It never mixes types: the typed accessors return ok ==
// false rather than converting when asked for the wrong type, matching
// the "fails with MismatchDataType" contract callers rely on.
//
// The zero Value is invalid (DataType() returns 0).
type Value struct {
	dtype DataType
	i8    []int8
	u8    []uint8
	i16   []int16
	i32   []int32
	f32   []float32
	f64   []float64
}

// NewValue returns a zero-initialized Value of type dtype and length n.
func NewValue(dtype DataType, n int) Value {
	switch dtype {
	case I8:
		return NewValueI8(make([]int8, n))
	case U8:
		return NewValueU8(make([]uint8, n))
	case I16:
		return NewValueI16(make([]int16, n))
	case I32:
		return NewValueI32(make([]int32, n))
	case F32:
		return NewValueF32(make([]float32, n))
	case F64:
		return NewValueF64(make([]float64, n))
	}
	return Value{}
}

// NewValueI8 wraps data as an I8 Value.
func NewValueI8(data []int8) Value { return Value{dtype: I8, i8: data} }

// NewValueU8 wraps data as a U8 Value.
func NewValueU8(data []uint8) Value { return Value{dtype: U8, u8: data} }

// NewValueI16 wraps data as an I16 Value.
func NewValueI16(data []int16) Value { return Value{dtype: I16, i16: data} }

// NewValueI32 wraps data as an I32 Value.
func NewValueI32(data []int32) Value { return Value{dtype: I32, i32: data} }

// NewValueF32 wraps data as an F32 Value.
func NewValueF32(data []float32) Value { return Value{dtype: F32, f32: data} }

// NewValueF64 wraps data as an F64 Value.
func NewValueF64(data []float64) Value { return Value{dtype: F64, f64: data} }

// DataType returns the element type of v, or 0 for the zero Value.
func (v Value) DataType() DataType { return v.dtype }

// Len returns the number of elements in v.
func (v Value) Len() int {
	switch v.dtype {
	case I8:
		return len(v.i8)
	case U8:
		return len(v.u8)
	case I16:
		return len(v.i16)
	case I32:
		return len(v.i32)
	case F32:
		return len(v.f32)
	case F64:
		return len(v.f64)
	}
	return 0
}

// I8 returns v's backing slice and true if v holds I8 data.
func (v Value) I8() ([]int8, bool) {
	if v.dtype != I8 {
		return nil, false
	}
	return v.i8, true
}

// U8 returns v's backing slice and true if v holds U8 data.
func (v Value) U8() ([]uint8, bool) {
	if v.dtype != U8 {
		return nil, false
	}
	return v.u8, true
}

// I16 returns v's backing slice and true if v holds I16 data.
func (v Value) I16() ([]int16, bool) {
	if v.dtype != I16 {
		return nil, false
	}
	return v.i16, true
}

// I32 returns v's backing slice and true if v holds I32 data.
func (v Value) I32() ([]int32, bool) {
	if v.dtype != I32 {
		return nil, false
	}
	return v.i32, true
}

// F32 returns v's backing slice and true if v holds F32 data.
func (v Value) F32() ([]float32, bool) {
	if v.dtype != F32 {
		return nil, false
	}
	return v.f32, true
}

// F64 returns v's backing slice and true if v holds F64 data.
func (v Value) F64() ([]float64, bool) {
	if v.dtype != F64 {
		return nil, false
	}
	return v.f64, true
}

// Equal reports whether v and other hold the same type and elements.
func (v Value) Equal(other Value) bool {
	if v.dtype != other.dtype {
		return false
	}
	switch v.dtype {
	case I8:
		return equalSlices(v.i8, other.i8)
	case U8:
		return equalSlices(v.u8, other.u8)
	case I16:
		return equalSlices(v.i16, other.i16)
	case I32:
		return equalSlices(v.i32, other.i32)
	case F32:
		return equalSlices(v.f32, other.f32)
	case F64:
		return equalSlices(v.f64, other.f64)
	}
	return true // both zero values
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
