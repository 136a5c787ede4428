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
	"fmt"

	"github.com/dustin/go-humanize"
)

// Version distinguishes the classic (32-bit offset) NetCDF-3 variant
// from the 64-bit offset variant.
type Version byte

const (
	// Classic is the original 32-bit-offset NetCDF-3 format (version
	// tag 1).
	Classic Version = 1
	// Offset64Bit is the 64-bit-offset NetCDF-3 format (version tag 2).
	Offset64Bit Version = 2
)

func (v Version) String() string {
	switch v {
	case Classic:
		return "classic"
	case Offset64Bit:
		return "64-bit offset"
	}
	return fmt.Sprintf("<%d>", byte(v))
}

func (v Version) valid() bool { return v == Classic || v == Offset64Bit }

// DataSet is the in-memory model of a NetCDF-3 dataset: dimensions,
// global attributes, and variables (each with its own attributes and
// optional in-memory data). The dataset exclusively owns its dimensions,
// attributes and variables; a variable borrows its dimensions by a
// stable id, so renaming a dimension is visible through every variable
// that references it.
type DataSet struct {
	version     Version // 0 until read from or written to a file
	dims        []*Dimension
	nextDimID   int
	unlimitedID int // -1 if no unlimited dimension
	globalAttrs attrList
	vars        []*Variable
}

// NewDataSet returns an empty, mutable dataset.
func NewDataSet() *DataSet {
	return &DataSet{unlimitedID: -1}
}

// Version returns the NetCDF-3 variant the dataset was read from or
// written as, or 0 if it has never been attached to a file.
func (ds *DataSet) Version() Version { return ds.version }

// Clone returns a deep copy of ds. Dimension ids are preserved, so a
// cloned dataset's variables still reference the corresponding cloned
// dimensions by the same ids.
func (ds *DataSet) Clone() *DataSet {
	cloneValue := func(v Value) Value {
		return Value{dtype: v.dtype,
			i8: append([]int8(nil), v.i8...), u8: append([]uint8(nil), v.u8...),
			i16: append([]int16(nil), v.i16...), i32: append([]int32(nil), v.i32...),
			f32: append([]float32(nil), v.f32...), f64: append([]float64(nil), v.f64...)}
	}
	out := &DataSet{version: ds.version, unlimitedID: ds.unlimitedID, nextDimID: ds.nextDimID}
	for _, d := range ds.dims {
		cp := *d
		out.dims = append(out.dims, &cp)
	}
	for _, a := range ds.globalAttrs.items {
		cp := Attribute{name: a.name, value: cloneValue(a.value)}
		out.globalAttrs.items = append(out.globalAttrs.items, &cp)
	}
	for _, v := range ds.vars {
		cp := &Variable{name: v.name, dtype: v.dtype, data: cloneValue(v.data), hasData: v.hasData}
		cp.dimIDs = append(cp.dimIDs, v.dimIDs...)
		for _, a := range v.attrs.items {
			acp := Attribute{name: a.name, value: cloneValue(a.value)}
			cp.attrs.items = append(cp.attrs.items, &acp)
		}
		out.vars = append(out.vars, cp)
	}
	return out
}

// String renders a debug dump of the dataset's dimensions, variables
// and attributes, in the spirit of a CDL header listing.
func (ds *DataSet) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "dimensions:\n")
	for _, d := range ds.dims {
		if d.kind == UnlimitedDim {
			fmt.Fprintf(&b, "\t%s = UNLIMITED ; // (%d currently)\n", d.name, d.size)
		} else {
			fmt.Fprintf(&b, "\t%s = %d ;\n", d.name, d.size)
		}
	}

	fmt.Fprintf(&b, "variables:\n")
	for _, v := range ds.vars {
		fmt.Fprintf(&b, "\t%s %s(", v.dtype, v.name)
		for i, id := range v.dimIDs {
			if i > 0 {
				fmt.Fprintf(&b, ", ")
			}
			fmt.Fprintf(&b, "%s", ds.dimByID(id).name)
		}
		fmt.Fprintf(&b, ") // chunk %s\n", humanize.Bytes(uint64(ds.ChunkSize(v))))
		for _, a := range v.attrs.items {
			fmt.Fprintf(&b, "\t\t%s:%s = %#v ;\n", v.name, a.name, a.value.raw())
		}
	}

	for _, a := range ds.globalAttrs.items {
		fmt.Fprintf(&b, "\t:%s = %#v ;\n", a.name, a.value.raw())
	}

	fmt.Fprintf(&b, "// record size %s\n", humanize.Bytes(uint64(ds.RecordSize())))
	return b.String()
}

// raw returns the underlying slice/value as an interface{}, for display
// purposes only.
func (v Value) raw() interface{} {
	switch v.dtype {
	case I8:
		return v.i8
	case U8:
		return v.u8
	case I16:
		return v.i16
	case I32:
		return v.i32
	case F32:
		return v.f32
	case F64:
		return v.f64
	}
	return nil
}
