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
)

const (
	absentTag = int32(0)
	dimTag    = int32(0x0A)
	attrTag   = int32(0x0C)
	varTag    = int32(0x0B)
)

var zeroPadding [4]byte

func writePadding(w io.Writer, n int) error {
	if n == 0 {
		return nil
	}
	_, err := w.Write(zeroPadding[:n])
	return err
}

func zeroPadLen(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

func writeName(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(s))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	return writePadding(w, zeroPadLen(len(s)))
}

func writeAttr(w io.Writer, a *Attribute) error {
	if err := writeName(w, a.name); err != nil {
		return err
	}
	v := a.value
	if err := binary.Write(w, binary.BigEndian, int32(v.DataType())); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(v.Len())); err != nil {
		return err
	}
	nbytes := v.Len() * v.DataType().Size()
	switch v.DataType() {
	case I8:
		data, _ := v.I8()
		if err := binary.Write(w, binary.BigEndian, data); err != nil {
			return err
		}
	case U8:
		data, _ := v.U8()
		if _, err := w.Write(data); err != nil {
			return err
		}
	case I16:
		data, _ := v.I16()
		if err := binary.Write(w, binary.BigEndian, data); err != nil {
			return err
		}
	case I32:
		data, _ := v.I32()
		if err := binary.Write(w, binary.BigEndian, data); err != nil {
			return err
		}
	case F32:
		data, _ := v.F32()
		if err := binary.Write(w, binary.BigEndian, data); err != nil {
			return err
		}
	case F64:
		data, _ := v.F64()
		if err := binary.Write(w, binary.BigEndian, data); err != nil {
			return err
		}
	}
	return writePadding(w, zeroPadLen(nbytes))
}

func writeAttrList(w io.Writer, attrs []*Attribute) error {
	if len(attrs) == 0 {
		return binary.Write(w, binary.BigEndian, [2]int32{absentTag, 0})
	}
	if err := binary.Write(w, binary.BigEndian, [2]int32{attrTag, int32(len(attrs))}); err != nil {
		return err
	}
	for _, a := range attrs {
		if err := writeAttr(w, a); err != nil {
			return err
		}
	}
	return nil
}

func writeDim(w io.Writer, d *Dimension) error {
	if err := writeName(w, d.name); err != nil {
		return err
	}
	size := int32(d.size)
	if d.kind == UnlimitedDim {
		size = 0
	}
	return binary.Write(w, binary.BigEndian, size)
}

// varVSize computes the on-disk vsize field: the chunk size in bytes,
// saturating to -1 (0xFFFFFFFF) if it would overflow a signed 32-bit
// integer, matching the reference writer's handling of the format's
// ambiguous vsize overflow rule.
func varVSize(chunkSize int64) int32 {
	if chunkSize > (1<<31 - 4) {
		return -1
	}
	return int32(chunkSize)
}

func writeVar(w io.Writer, v *Variable, dimIDs []int, chunkSize, begin int64, version Version) error {
	if err := writeName(w, v.name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(len(dimIDs))); err != nil {
		return err
	}
	for _, id := range dimIDs {
		if err := binary.Write(w, binary.BigEndian, int32(id)); err != nil {
			return err
		}
	}
	if err := writeAttrList(w, v.attrs.items); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(v.dtype)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, varVSize(chunkSize)); err != nil {
		return err
	}
	if version == Classic {
		return binary.Write(w, binary.BigEndian, int32(begin))
	}
	return binary.Write(w, binary.BigEndian, begin)
}

// writeHeaderWith encodes the full header for ds using the given
// version, numrecs value and variable layout (header order, matching
// ds.vars). Variable begin offsets are written in this original
// insertion order even though the layout planner assigns them in
// fixed-then-record order: writing in layout order would produce a file
// whose variable order disagrees with the dataset's declared order and
// break readers that index variables positionally.
func writeHeaderWith(w io.Writer, ds *DataSet, version Version, numrecs int32, layout *Layout) error {
	if err := binary.Write(w, binary.BigEndian, [4]byte{'C', 'D', 'F', byte(version)}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, numrecs); err != nil {
		return err
	}

	if len(ds.dims) == 0 {
		if err := binary.Write(w, binary.BigEndian, [2]int32{absentTag, 0}); err != nil {
			return err
		}
	} else {
		if err := binary.Write(w, binary.BigEndian, [2]int32{dimTag, int32(len(ds.dims))}); err != nil {
			return err
		}
		for _, d := range ds.dims {
			if err := writeDim(w, d); err != nil {
				return err
			}
		}
	}

	if err := writeAttrList(w, ds.globalAttrs.items); err != nil {
		return err
	}

	if len(ds.vars) == 0 {
		return binary.Write(w, binary.BigEndian, [2]int32{absentTag, 0})
	}
	if err := binary.Write(w, binary.BigEndian, [2]int32{varTag, int32(len(ds.vars))}); err != nil {
		return err
	}
	for i, v := range ds.vars {
		vl := layout.Vars[i]
		if err := writeVar(w, v, vl.DimIDs, vl.ChunkSize, vl.BeginOffset, version); err != nil {
			return err
		}
	}
	return nil
}

// countingWriter discards bytes but tracks how many were written, used
// to compute header_required_size without performing real I/O.
type countingWriter int64

func (c *countingWriter) Write(p []byte) (int, error) {
	*c += countingWriter(len(p))
	return len(p), nil
}

// headerSize returns the exact encoded byte size of ds's header for the
// given version. Offsets do not affect the byte count (the begin field's
// width is fixed by version), so a zeroed layout is sufficient.
func headerSize(ds *DataSet, version Version) int64 {
	zero := &Layout{Vars: make([]VarLayout, len(ds.vars))}
	for i, v := range ds.vars {
		zero.Vars[i] = VarLayout{Var: v, DimIDs: v.dimIDs, ChunkSize: ds.ChunkSize(v)}
	}
	var n countingWriter
	writeHeaderWith(&n, ds, version, 0, zero)
	return int64(n)
}
