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

import (
	"errors"
	"testing"
)

func TestAddVarUnlimitedMustBeFirst(t *testing.T) {
	ds := NewDataSet()
	ds.SetUnlimitedDim("time", 0)
	ds.AddFixedDim("x", 10)

	if _, err := ds.AddVar("bad", []string{"x", "time"}, F32); err == nil {
		t.Fatal("expected error for unlimited dim not first")
	} else if _, ok := err.(*UnlimitedDimensionMustBeFirstError); !ok {
		t.Errorf("got %T, want *UnlimitedDimensionMustBeFirstError", err)
	}

	if _, err := ds.AddVar("good", []string{"time", "x"}, F32); err != nil {
		t.Fatalf("AddVar with unlimited first: %v", err)
	}
}

func TestAddVarRepeatedDim(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 4)
	if _, err := ds.AddVar("m", []string{"x", "x"}, I32); err == nil {
		t.Fatal("expected error for repeated dimension")
	} else if _, ok := err.(*DimensionsUsedMultipleTimesError); !ok {
		t.Errorf("got %T, want *DimensionsUsedMultipleTimesError", err)
	}
}

func TestAddVarUndefinedDim(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddVar("m", []string{"ghost"}, I32); err == nil {
		t.Fatal("expected error for undefined dimension")
	} else if _, ok := err.(*DimensionsNotDefinedError); !ok {
		t.Errorf("got %T, want *DimensionsNotDefinedError", err)
	}
}

func TestRemoveDimStillUsed(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 4)
	ds.AddVar("v", []string{"x"}, I32)
	if _, err := ds.RemoveDim("x"); err == nil {
		t.Fatal("expected error removing a dimension still referenced")
	} else if _, ok := err.(*DimensionStillUsedError); !ok {
		t.Errorf("got %T, want *DimensionStillUsedError", err)
	}
}

func TestChunkAndRecordArithmetic(t *testing.T) {
	ds := NewDataSet()
	ds.SetUnlimitedDim("time", 3)
	ds.AddFixedDim("x", 5)
	ds.AddFixedDim("y", 7)
	rv, err := ds.AddVar("temp", []string{"time", "x", "y"}, F64)
	if err != nil {
		t.Fatal(err)
	}
	fv, err := ds.AddVar("mask", []string{"x", "y"}, I8)
	if err != nil {
		t.Fatal(err)
	}

	if !ds.IsRecordVar(rv) {
		t.Error("temp should be a record variable")
	}
	if ds.IsRecordVar(fv) {
		t.Error("mask should not be a record variable")
	}
	if got := ds.ChunkLen(rv); got != 5*7 {
		t.Errorf("ChunkLen(temp) = %d, want %d", got, 5*7)
	}
	if got := ds.NumChunks(rv); got != 3 {
		t.Errorf("NumChunks(temp) = %d, want 3", got)
	}
	if got := ds.TotalLen(rv); got != 3*5*7 {
		t.Errorf("TotalLen(temp) = %d, want %d", got, 3*5*7)
	}
	if got := ds.ChunkSize(fv); got != pad4(5*7*1) {
		t.Errorf("ChunkSize(mask) = %d, want %d", got, pad4(5*7))
	}
	if got := ds.RecordSize(); got != ds.ChunkSize(rv) {
		t.Errorf("RecordSize() = %d, want %d (only temp is a record var)", got, ds.ChunkSize(rv))
	}
}

func TestSetVarDataTypeAndLengthMismatch(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 3)
	ds.AddVar("v", []string{"x"}, I32)

	if err := ds.SetVarDataF32("v", []float32{1, 2, 3}); err == nil {
		t.Fatal("expected type mismatch error")
	} else if !errors.As(err, new(*VariableMismatchDataTypeError)) {
		t.Errorf("got %T, want *VariableMismatchDataTypeError", err)
	}

	if err := ds.SetVarDataI32("v", []int32{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	} else if !errors.As(err, new(*VariableMismatchDataLengthError)) {
		t.Errorf("got %T, want *VariableMismatchDataLengthError", err)
	}

	if err := ds.SetVarDataI32("v", []int32{1, 2, 3}); err != nil {
		t.Fatalf("SetVarDataI32: %v", err)
	}
	data, ok := ds.GetVarData("v")
	if !ok {
		t.Fatal("GetVarData should report data present")
	}
	got, _ := data.I32()
	if len(got) != 3 || got[2] != 3 {
		t.Errorf("GetVarData = %v, want [1 2 3]", got)
	}
}
