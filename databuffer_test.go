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

import "testing"

func TestValueTypedAccessors(t *testing.T) {
	v := NewValueF32([]float32{1, 2, 3})
	if v.DataType() != F32 || v.Len() != 3 {
		t.Fatalf("got type %v len %d, want F32 3", v.DataType(), v.Len())
	}
	if _, ok := v.I32(); ok {
		t.Errorf("I32() on an F32 Value should fail")
	}
	data, ok := v.F32()
	if !ok || len(data) != 3 || data[1] != 2 {
		t.Errorf("F32() = %v, %v, want [1 2 3] true", data, ok)
	}
}

func TestValueEqual(t *testing.T) {
	a := NewValueI16([]int16{1, 2, 3})
	b := NewValueI16([]int16{1, 2, 3})
	c := NewValueI16([]int16{1, 2, 4})
	d := NewValueI32([]int32{1, 2, 3})
	if !a.Equal(b) {
		t.Errorf("identical I16 values should be equal")
	}
	if a.Equal(c) {
		t.Errorf("differing I16 values should not be equal")
	}
	if a.Equal(d) {
		t.Errorf("values of different types should not be equal")
	}
}

func TestNewValueZeroed(t *testing.T) {
	v := NewValue(I32, 4)
	data, ok := v.I32()
	if !ok || len(data) != 4 {
		t.Fatalf("NewValue(I32, 4) = %v, %v", data, ok)
	}
	for _, x := range data {
		if x != 0 {
			t.Errorf("NewValue should zero-initialize, got %v", data)
		}
	}
}
