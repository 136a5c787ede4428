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
	"testing"
)

// memAt is a minimal in-memory io.ReaderAt/io.WriterAt backed by a
// growable byte slice, standing in for a file during codec tests.
type memAt struct{ buf []byte }

func (m *memAt) ReadAt(p []byte, off int64) (int, error) {
	n := copy(p, m.buf[off:])
	return n, nil
}

func (m *memAt) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[off:], p)
	return len(p), nil
}

func TestFixedVarRoundTrip(t *testing.T) {
	m := &memAt{}
	data := NewValueI32([]int32{10, 20, 30})
	if err := writeFixedVar(m, 0, I32, data); err != nil {
		t.Fatal(err)
	}
	got, err := readFixedVar(m, 0, I32, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(data) {
		t.Errorf("round trip = %v, want %v", got.raw(), data.raw())
	}
}

func TestFixedVarPaddingUsesFillValue(t *testing.T) {
	m := &memAt{}
	// 3 I8 elements: a 3-byte chunk needs 1 padding byte, which must be
	// the I8 fill value (-127 / 0x81), not zero.
	data := NewValueI8([]int8{1, 2, 3})
	if err := writeFixedVar(m, 0, I8, data); err != nil {
		t.Fatal(err)
	}
	if len(m.buf) != 4 {
		t.Fatalf("wrote %d bytes, want 4 (3 data + 1 pad)", len(m.buf))
	}
	if m.buf[3] != 0x81 {
		t.Errorf("padding byte = %#x, want 0x81 (I8 fill value)", m.buf[3])
	}
}

func TestRecordVarRoundTrip(t *testing.T) {
	m := &memAt{}
	const recordSize = 16 // deliberately larger than the chunk, as if sharing a record with another variable
	data := NewValueI16([]int16{1, 2, 3, 4, 5, 6})
	if err := writeRecordVar(m, 0, recordSize, I16, 3, data); err != nil {
		t.Fatal(err)
	}
	got, err := readRecordVar(m, 0, recordSize, I16, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(data) {
		t.Errorf("round trip = %v, want %v", got.raw(), data.raw())
	}
}

func TestFillChunkUsesFillValue(t *testing.T) {
	m := &memAt{}
	if err := fillChunk(m, 0, F64, 2); err != nil {
		t.Fatal(err)
	}
	got, err := readFixedVar(m, 0, F64, 2)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := got.F64()
	fv, _ := F64.FillValue().F64()
	for i, x := range data {
		if x != fv[0] {
			t.Errorf("element %d = %v, want fill value %v", i, x, fv[0])
		}
	}
}
