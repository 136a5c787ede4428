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
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestFileWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nc")

	ds := NewDataSet()
	// The record count is part of the dataset definition: a writer knows
	// up front how many records it will write and declares that via the
	// unlimited dimension's initial size before SetDef, rather than
	// growing it implicitly as WriteVar calls arrive.
	ds.SetUnlimitedDim("time", 2)
	ds.AddFixedDim("x", 3)
	ds.AddGlobalAttrChar("title", "round trip test")
	if _, err := ds.AddVar("x_coord", []string{"x"}, F32); err != nil {
		t.Fatal(err)
	}
	if _, err := ds.AddVar("temp", []string{"time", "x"}, F64); err != nil {
		t.Fatal(err)
	}
	// never written; Close should fill it with its type's fill value.
	if _, err := ds.AddVar("unwritten", []string{"x"}, I16); err != nil {
		t.Fatal(err)
	}

	w, err := CreateFile(path)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := w.SetDef(ds, Classic, 0); err != nil {
		t.Fatalf("SetDef: %v", err)
	}
	if err := w.WriteVarF32("x_coord", []float32{1, 2, 3}); err != nil {
		t.Fatalf("WriteVarF32: %v", err)
	}
	if err := w.WriteVarF64("temp", []float64{10, 11, 12, 20, 21, 22}); err != nil {
		t.Fatalf("WriteVarF64: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer r.Close()

	if got := r.DataSet().NumRecords(); got != 2 {
		t.Errorf("NumRecords() = %d, want 2", got)
	}

	xCoord, err := r.ReadVarToF32("x_coord")
	if err != nil {
		t.Fatalf("ReadVarToF32: %v", err)
	}
	if len(xCoord) != 3 || xCoord[1] != 2 {
		t.Errorf("x_coord = %v, want [1 2 3]", xCoord)
	}

	temp, err := r.ReadVarToF64("temp")
	if err != nil {
		t.Fatalf("ReadVarToF64: %v", err)
	}
	want := []float64{10, 11, 12, 20, 21, 22}
	if len(temp) != len(want) {
		t.Fatalf("temp = %v, want %v", temp, want)
	}
	for i := range want {
		if temp[i] != want[i] {
			t.Errorf("temp[%d] = %v, want %v", i, temp[i], want[i])
		}
	}

	unwritten, err := r.ReadVarToI16("unwritten")
	if err != nil {
		t.Fatalf("ReadVarToI16: %v", err)
	}
	fv, _ := I16.FillValue().I16()
	for i, x := range unwritten {
		if x != fv[0] {
			t.Errorf("unwritten[%d] = %v, want fill value %v", i, x, fv[0])
		}
	}
}

func TestFileWriteWrongTypeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nc")
	ds := NewDataSet()
	ds.AddFixedDim("x", 3)
	ds.AddVar("v", []string{"x"}, I32)

	w, err := CreateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SetDef(ds, Classic, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteVarF32("v", []float32{1, 2, 3}); err == nil {
		t.Fatal("expected a type mismatch error")
	} else if _, ok := err.(*VariableMismatchDataTypeError); !ok {
		t.Errorf("got %T, want *VariableMismatchDataTypeError", err)
	}
}

func TestFileWriterFlushUpdatesNumRecsBeforeClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nc")
	ds := NewDataSet()
	ds.SetUnlimitedDim("time", 2)
	ds.AddFixedDim("x", 3)
	if _, err := ds.AddVar("temp", []string{"time", "x"}, F64); err != nil {
		t.Fatal(err)
	}

	w, err := CreateFile(path)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := w.SetDef(ds, Classic, 0); err != nil {
		t.Fatalf("SetDef: %v", err)
	}
	if err := w.WriteVarF64("temp", []float64{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("WriteVarF64: %v", err)
	}

	// SetDef already wrote numrecs=2, since the record count was declared
	// up front; overwrite it on disk to the streaming sentinel to prove
	// Flush is the one putting the real count back, not SetDef.
	sentinel := numRecsFieldBytes(int64(streamingNumRecs))
	if _, err := w.f.WriteAt(sentinel[:], numRecsOffset); err != nil {
		t.Fatalf("priming sentinel: %v", err)
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := int32(binary.BigEndian.Uint32(raw[numRecsOffset : numRecsOffset+4])); got != 2 {
		t.Errorf("numrecs after Flush = %d, want 2", got)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFileWriterFlushBeforeSetDefRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nc")
	w, err := CreateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Flush(); err == nil {
		t.Fatal("expected an error flushing before SetDef")
	} else if _, ok := err.(*HeaderNotDefinedError); !ok {
		t.Errorf("got %T, want *HeaderNotDefinedError", err)
	}
}

func TestFileSetDefTwiceRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nc")
	ds := NewDataSet()
	ds.AddFixedDim("x", 1)

	w, err := CreateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SetDef(ds, Classic, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.SetDef(ds, Classic, 0); err == nil {
		t.Fatal("expected an error redefining the header")
	} else if _, ok := err.(*HeaderAlreadyDefinedError); !ok {
		t.Errorf("got %T, want *HeaderAlreadyDefinedError", err)
	}
}
