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
	"errors"
	"io"
	"log"
)

func readU32(r io.Reader, kind ParseErrorKind) (int32, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, headerReadErr(err, kind)
	}
	if n < 0 {
		return 0, &ParseHeaderError{Kind: kind, Offending: int32Bytes(n)}
	}
	return n, nil
}

func int32Bytes(n int32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	return b[:]
}

// headerReadErr turns an underlying read failure into a *ParseHeaderError,
// since at this layer EOF means the header is truncated, not an I/O
// failure.
func headerReadErr(err error, kind ParseErrorKind) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseHeaderError{Kind: kind, NeedMore: 1}
	}
	return &ParseHeaderError{Kind: kind, Offending: []byte(err.Error())}
}

func readName(r io.Reader) (string, error) {
	n, err := readU32(r, KindNonNegativeI32)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", headerReadErr(err, KindUtf8)
	}
	if err := skipZeroPadding(r, zeroPadLen(int(n))); err != nil {
		return "", err
	}
	return string(buf), nil
}

func skipZeroPadding(r io.Reader, n int) error {
	if n == 0 {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return headerReadErr(err, KindZeroPadding)
	}
	for _, b := range buf {
		if b != 0 {
			return &ParseHeaderError{Kind: KindZeroPadding, Offending: buf}
		}
	}
	return nil
}

func readDataType(r io.Reader) (DataType, error) {
	n, err := readU32(r, KindDataType)
	if err != nil {
		return 0, err
	}
	dt := DataType(n)
	if !dt.Valid() {
		return 0, &ParseHeaderError{Kind: KindDataType, Offending: int32Bytes(n)}
	}
	return dt, nil
}

func readValue(r io.Reader, dtype DataType, n int32) (Value, error) {
	v := NewValue(dtype, int(n))
	nbytes := int(n) * dtype.Size()
	var err error
	switch dtype {
	case I8:
		data, _ := v.I8()
		err = binary.Read(r, binary.BigEndian, data)
	case U8:
		data, _ := v.U8()
		_, err = io.ReadFull(r, data)
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
		return Value{}, headerReadErr(err, KindDataElements)
	}
	if err := skipZeroPadding(r, zeroPadLen(nbytes)); err != nil {
		return Value{}, err
	}
	return v, nil
}

func readAttr(r io.Reader) (string, Value, error) {
	name, err := readName(r)
	if err != nil {
		return "", Value{}, err
	}
	dtype, err := readDataType(r)
	if err != nil {
		return "", Value{}, err
	}
	n, err := readU32(r, KindNonNegativeI32)
	if err != nil {
		return "", Value{}, err
	}
	v, err := readValue(r, dtype, n)
	if err != nil {
		return "", Value{}, err
	}
	return name, v, nil
}

func readAttrListBody(r io.Reader, n int32) ([]string, []Value, error) {
	names := make([]string, n)
	values := make([]Value, n)
	var err error
	for i := range names {
		names[i], values[i], err = readAttr(r)
		if err != nil {
			return nil, nil, err
		}
	}
	return names, values, nil
}

func readTagCount(r io.Reader, kind ParseErrorKind) (int32, int32, error) {
	var tag int32
	if err := binary.Read(r, binary.BigEndian, &tag); err != nil {
		return 0, 0, headerReadErr(err, kind)
	}
	n, err := readU32(r, kind)
	if err != nil {
		return 0, 0, err
	}
	return tag, n, nil
}

type parsedVar struct {
	name   string
	dimIDs []int32
	names  []string
	values []Value
	dtype  DataType
	vsize  int32
	begin  int64
}

func readVar(r io.Reader, version Version) (*parsedVar, error) {
	name, err := readName(r)
	if err != nil {
		return nil, err
	}
	ndims, err := readU32(r, KindNonNegativeI32)
	if err != nil {
		return nil, err
	}
	dimIDs := make([]int32, ndims)
	for i := range dimIDs {
		if err := binary.Read(r, binary.BigEndian, &dimIDs[i]); err != nil {
			return nil, headerReadErr(err, KindNonNegativeI32)
		}
	}
	tag, n, err := readTagCount(r, KindAttrTag)
	if err != nil {
		return nil, err
	}
	var names []string
	var values []Value
	switch tag {
	case absentTag:
		if n != 0 {
			return nil, &ParseHeaderError{Kind: KindAttrTag, Offending: int32Bytes(n)}
		}
	case attrTag:
		names, values, err = readAttrListBody(r, n)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &ParseHeaderError{Kind: KindAttrTag, Offending: int32Bytes(tag)}
	}
	dtype, err := readDataType(r)
	if err != nil {
		return nil, err
	}
	var vsize int32
	if err := binary.Read(r, binary.BigEndian, &vsize); err != nil {
		return nil, headerReadErr(err, KindNonNegativeI32)
	}
	var begin int64
	if version == Classic {
		var b32 int32
		if err := binary.Read(r, binary.BigEndian, &b32); err != nil {
			return nil, headerReadErr(err, KindOffset)
		}
		begin = int64(b32)
	} else {
		if err := binary.Read(r, binary.BigEndian, &begin); err != nil {
			return nil, headerReadErr(err, KindOffset)
		}
	}
	return &parsedVar{name: name, dimIDs: dimIDs, names: names, values: values, dtype: dtype, vsize: vsize, begin: begin}, nil
}

// readHeader decodes the CDF magic, version, dimension/attribute/variable
// sections and builds a DataSet plus the on-disk layout (as recorded in
// the file, not recomputed). rawNumRecs is the raw numrecs header field,
// including the streaming sentinel (-1), for the caller to resolve.
func readHeader(r io.Reader) (ds *DataSet, layout *Layout, rawNumRecs int32, err error) {
	var magic [3]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, nil, 0, headerReadErr(err, KindMagicWord)
	}
	if magic != [3]byte{'C', 'D', 'F'} {
		return nil, nil, 0, &ParseHeaderError{Kind: KindMagicWord, Offending: magic[:]}
	}

	var versionByte [1]byte
	if _, err := io.ReadFull(r, versionByte[:]); err != nil {
		return nil, nil, 0, headerReadErr(err, KindVersionNumber)
	}
	version := Version(versionByte[0])
	if !version.valid() {
		return nil, nil, 0, &ParseHeaderError{Kind: KindVersionNumber, Offending: versionByte[:]}
	}

	if err := binary.Read(r, binary.BigEndian, &rawNumRecs); err != nil {
		return nil, nil, 0, headerReadErr(err, KindNonNegativeI32)
	}

	ds = NewDataSet()
	ds.version = version

	layout = &Layout{}
	var sawVars []*parsedVar

	// The three header sections (dimensions, global attributes,
	// variables) are always written in this order, but nothing stops a
	// corrupt or foreign-written file from presenting them out of turn;
	// dispatch on the tag actually found, the way the reference decoder
	// does, and only complain.
	for section := 0; section < 3; section++ {
		tag, n, err := readTagCount(r, KindDimTag)
		if err != nil {
			return nil, nil, 0, err
		}
		if tag == absentTag {
			if n != 0 {
				return nil, nil, 0, &ParseHeaderError{Kind: KindDimTag, Offending: int32Bytes(n)}
			}
			continue
		}
		switch tag {
		case dimTag:
			if section != 0 {
				log.Printf("netcdf3: dimension section out of order: position %d", section)
			}
			for i := int32(0); i < n; i++ {
				name, err := readName(r)
				if err != nil {
					return nil, nil, 0, err
				}
				size, err := readU32(r, KindNonNegativeI32)
				if err != nil {
					return nil, nil, 0, err
				}
				if size == 0 {
					if _, err := ds.SetUnlimitedDim(name, int(rawNumRecs)); err != nil {
						return nil, nil, 0, err
					}
				} else {
					if _, err := ds.AddFixedDim(name, int(size)); err != nil {
						return nil, nil, 0, err
					}
				}
			}
		case attrTag:
			if section != 1 {
				log.Printf("netcdf3: global attribute section out of order: position %d", section)
			}
			names, values, err := readAttrListBody(r, n)
			if err != nil {
				return nil, nil, 0, err
			}
			for i, name := range names {
				if _, err := ds.AddGlobalAttr(name, values[i]); err != nil {
					return nil, nil, 0, err
				}
			}
		case varTag:
			if section != 2 {
				log.Printf("netcdf3: variable section out of order: position %d", section)
			}
			for i := int32(0); i < n; i++ {
				pv, err := readVar(r, version)
				if err != nil {
					return nil, nil, 0, err
				}
				sawVars = append(sawVars, pv)
			}
		default:
			return nil, nil, 0, &ParseHeaderError{Kind: KindDimTag, Offending: int32Bytes(tag)}
		}
	}

	layout.Vars = make([]VarLayout, len(sawVars))
	for i, pv := range sawVars {
		ids := make([]int, len(pv.dimIDs))
		for j, id := range pv.dimIDs {
			ids[j] = int(id)
		}
		dims, err := ds.ResolveDimsByIDs(ids)
		if err != nil {
			return nil, nil, 0, err
		}
		v, err := ds.addVarUsingDimRefs(pv.name, dims, pv.dtype)
		if err != nil {
			return nil, nil, 0, err
		}
		for j, name := range pv.names {
			if _, err := ds.AddVarAttr(pv.name, name, pv.values[j]); err != nil {
				return nil, nil, 0, err
			}
		}
		layout.Vars[i] = VarLayout{Var: v, DimIDs: ids, ChunkSize: ds.ChunkSize(v), BeginOffset: pv.begin}
	}

	layout.HeaderRequiredSize = headerSize(ds, version)
	if len(layout.Vars) > 0 {
		layout.HeaderActualSize = layout.Vars[0].BeginOffset
		for _, vl := range layout.Vars {
			if vl.BeginOffset < layout.HeaderActualSize {
				layout.HeaderActualSize = vl.BeginOffset
			}
		}
	} else {
		layout.HeaderActualSize = pad4(layout.HeaderRequiredSize)
	}

	return ds, layout, rawNumRecs, nil
}
