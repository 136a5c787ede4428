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
	"bytes"
	"encoding/binary"
	"io"

	"github.com/spatialmodel/netcdf3/internal/bufpool"
)

// fillPaddingBytes returns the padLen bytes used to round a data chunk
// up to a multiple of 4: the element's fill-value byte pattern, cycled.
// Elements whose size already divides 4 (I32, F32, F64) never need this.
func fillPaddingBytes(dtype DataType, padLen int) []byte {
	if padLen == 0 {
		return nil
	}
	var one bytes.Buffer
	fv := dtype.FillValue()
	switch dtype {
	case I8:
		v, _ := fv.I8()
		binary.Write(&one, binary.BigEndian, v)
	case U8:
		v, _ := fv.U8()
		one.Write(v)
	case I16:
		v, _ := fv.I16()
		binary.Write(&one, binary.BigEndian, v)
	}
	pattern := one.Bytes()
	out := make([]byte, padLen)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}

// encodeValue renders v as big-endian bytes, returning exactly v.Len()
// elements worth of data, with no padding.
func encodeValue(v Value) ([]byte, error) {
	var buf bytes.Buffer
	switch v.DataType() {
	case I8:
		data, _ := v.I8()
		if err := binary.Write(&buf, binary.BigEndian, data); err != nil {
			return nil, err
		}
	case U8:
		data, _ := v.U8()
		buf.Write(data)
	case I16:
		data, _ := v.I16()
		if err := binary.Write(&buf, binary.BigEndian, data); err != nil {
			return nil, err
		}
	case I32:
		data, _ := v.I32()
		if err := binary.Write(&buf, binary.BigEndian, data); err != nil {
			return nil, err
		}
	case F32:
		data, _ := v.F32()
		if err := binary.Write(&buf, binary.BigEndian, data); err != nil {
			return nil, err
		}
	case F64:
		data, _ := v.F64()
		if err := binary.Write(&buf, binary.BigEndian, data); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// writeFixedVar writes the whole (non-record) data buffer of v at its
// begin offset in one contiguous chunk.
func writeFixedVar(w io.WriterAt, begin int64, dtype DataType, data Value) error {
	raw, err := encodeValue(data)
	if err != nil {
		return &WriteIOError{Err: err}
	}
	if pad := zeroPadLen(len(raw)); pad > 0 {
		raw = append(raw, fillPaddingBytes(dtype, pad)...)
	}
	if _, err := w.WriteAt(raw, begin); err != nil {
		return &WriteIOError{Err: err}
	}
	return nil
}

// writeRecordVar writes the whole data buffer of a record variable,
// interleaving one chunk per record at stride recordSize.
func writeRecordVar(w io.WriterAt, begin, recordSize int64, dtype DataType, chunkLen int, data Value) error {
	raw, err := encodeValue(data)
	if err != nil {
		return &WriteIOError{Err: err}
	}
	usefulLen := chunkLen * dtype.Size()
	padLen := zeroPadLen(usefulLen)
	pad := fillPaddingBytes(dtype, padLen)

	numRecords := len(raw) / usefulLen
	for i := 0; i < numRecords; i++ {
		off := begin + int64(i)*recordSize
		chunk := raw[i*usefulLen : (i+1)*usefulLen]
		if _, err := w.WriteAt(chunk, off); err != nil {
			return &WriteIOError{Err: err}
		}
		if len(pad) > 0 {
			if _, err := w.WriteAt(pad, off+int64(usefulLen)); err != nil {
				return &WriteIOError{Err: err}
			}
		}
	}
	return nil
}

// fillChunk overwrites a single chunk-sized region with dtype's fill
// value, repeated to fill chunkLen elements plus trailing padding.
func fillChunk(w io.WriterAt, begin int64, dtype DataType, chunkLen int) error {
	fv := dtype.FillValue()
	rep := NewValue(dtype, chunkLen)
	switch dtype {
	case I8:
		v, _ := fv.I8()
		data, _ := rep.I8()
		for i := range data {
			data[i] = v[0]
		}
	case U8:
		v, _ := fv.U8()
		data, _ := rep.U8()
		for i := range data {
			data[i] = v[0]
		}
	case I16:
		v, _ := fv.I16()
		data, _ := rep.I16()
		for i := range data {
			data[i] = v[0]
		}
	case I32:
		v, _ := fv.I32()
		data, _ := rep.I32()
		for i := range data {
			data[i] = v[0]
		}
	case F32:
		v, _ := fv.F32()
		data, _ := rep.F32()
		for i := range data {
			data[i] = v[0]
		}
	case F64:
		v, _ := fv.F64()
		data, _ := rep.F64()
		for i := range data {
			data[i] = v[0]
		}
	}
	encoded, err := encodeValue(rep)
	if err != nil {
		return &WriteIOError{Err: err}
	}
	pad := fillPaddingBytes(dtype, zeroPadLen(len(encoded)))
	raw := bufpool.Get(len(encoded) + len(pad))
	defer bufpool.Put(raw)
	copy(raw, encoded)
	copy(raw[len(encoded):], pad)
	if _, err := w.WriteAt(raw, begin); err != nil {
		return &WriteIOError{Err: err}
	}
	return nil
}
