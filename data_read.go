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
	"io"

	"github.com/spatialmodel/netcdf3/internal/bufpool"
)

// decodeValue reads n elements of dtype from raw big-endian bytes.
func decodeValue(dtype DataType, n int, raw []byte) (Value, error) {
	v := NewValue(dtype, n)
	r := newByteReader(raw)
	var err error
	switch dtype {
	case I8:
		data, _ := v.I8()
		err = binary.Read(r, binary.BigEndian, data)
	case U8:
		data, _ := v.U8()
		copy(data, raw)
	case I16:
		data, _ := v.I16()
		err = binary.Read(r, binary.BigEndian, data)
	case I32:
		data, _ := v.I32()
		err = binary.Read(r, binary.BigEndian, data)
	case F32:
		data, _ := v.F32()
		err = binary.Read(r, binary.BigEndian, data)
	case F64:
		data, _ := v.F64()
		err = binary.Read(r, binary.BigEndian, data)
	}
	if err != nil {
		return Value{}, &ReadIOError{Err: err}
	}
	return v, nil
}

type byteReader struct {
	b []byte
}

func newByteReader(b []byte) *byteReader { return &byteReader{b: b} }

func (r *byteReader) Read(p []byte) (int, error) {
	n := copy(p, r.b)
	r.b = r.b[n:]
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

// readFixedVar reads the whole data buffer of a non-record variable: one
// contiguous chunk of chunkLen elements at begin.
func readFixedVar(r io.ReaderAt, begin int64, dtype DataType, chunkLen int) (Value, error) {
	raw := bufpool.Get(chunkLen * dtype.Size())
	defer bufpool.Put(raw)
	if _, err := r.ReadAt(raw, begin); err != nil {
		return Value{}, &ReadIOError{Err: err}
	}
	return decodeValue(dtype, chunkLen, raw)
}

// readRecordVar reads the whole data buffer of a record variable:
// numRecords chunks of chunkLen elements, each recordSize bytes apart
// starting at begin.
func readRecordVar(r io.ReaderAt, begin, recordSize int64, dtype DataType, chunkLen, numRecords int) (Value, error) {
	usefulLen := chunkLen * dtype.Size()
	raw := bufpool.Get(usefulLen * numRecords)
	defer bufpool.Put(raw)
	for i := 0; i < numRecords; i++ {
		off := begin + int64(i)*recordSize
		if _, err := r.ReadAt(raw[i*usefulLen:(i+1)*usefulLen], off); err != nil {
			return Value{}, &ReadIOError{Err: err}
		}
	}
	return decodeValue(dtype, chunkLen*numRecords, raw)
}
