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

// This file contains the FileReader and FileWriter types: the on-disk
// entry points that tie the dataset model, layout planner, and header
// and data codecs together.

package netcdf3

import (
	"golang.org/x/sync/errgroup"
	"os"
)

// FileReader opens an existing NetCDF-3 file, parses its header, and
// serves variable data from it on demand.
type FileReader struct {
	path    string
	f       *os.File
	ds      *DataSet
	layout  *Layout
	version Version
}

// OpenFile opens path for reading and parses its header. The returned
// reader holds an open file handle and a shared (read) advisory lock
// until Close is called.
func OpenFile(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadIOError{Err: err}
	}
	if err := lockShared(f); err != nil {
		f.Close()
		return nil, &ReadIOError{Err: err}
	}

	ds, layout, rawNumRecs, err := readHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &ReadIOError{Err: err}
	}
	if ds.HasUnlimitedDim() {
		recordSize := ds.RecordSize()
		n, err := resolveNumRecs(rawNumRecs, fi.Size(), layout.recordsStart(ds), recordSize)
		if err != nil {
			f.Close()
			return nil, err
		}
		ds.dimByID(ds.unlimitedID).size = n
	}

	return &FileReader{path: path, f: f, ds: ds, layout: layout, version: ds.version}, nil
}

// DataSet returns the parsed dataset definition.
func (fr *FileReader) DataSet() *DataSet { return fr.ds }

// Version returns the file's NetCDF-3 variant.
func (fr *FileReader) Version() Version { return fr.version }

// Close releases the reader's file handle and lock.
func (fr *FileReader) Close() error {
	err := fr.f.Close()
	if err != nil {
		return &ReadIOError{Err: err}
	}
	return nil
}

func (fr *FileReader) readVar(v *Variable) (Value, error) {
	vl := fr.layout.byName(v.name)
	if vl == nil {
		return Value{}, &VariableNotDefinedError{Name: v.name}
	}
	if !fr.ds.IsRecordVar(v) {
		return readFixedVar(fr.f, vl.BeginOffset, v.dtype, fr.ds.ChunkLen(v))
	}
	return readRecordVar(fr.f, vl.BeginOffset, fr.ds.RecordSize(), v.dtype, fr.ds.ChunkLen(v), fr.ds.NumRecords())
}

// ReadVar reads and returns the full data of variable varName.
func (fr *FileReader) ReadVar(varName string) (Value, error) {
	v := fr.ds.varByName(varName)
	if v == nil {
		return Value{}, &VariableNotDefinedError{Name: varName}
	}
	return fr.readVar(v)
}

// ReadVarToI8 reads variable varName's data as a []int8.
func (fr *FileReader) ReadVarToI8(varName string) ([]int8, error) {
	v, err := fr.readTypedVar(varName, I8)
	if err != nil {
		return nil, err
	}
	data, _ := v.I8()
	return data, nil
}

// ReadVarToU8 reads variable varName's data as a []uint8.
func (fr *FileReader) ReadVarToU8(varName string) ([]uint8, error) {
	v, err := fr.readTypedVar(varName, U8)
	if err != nil {
		return nil, err
	}
	data, _ := v.U8()
	return data, nil
}

// ReadVarToI16 reads variable varName's data as a []int16.
func (fr *FileReader) ReadVarToI16(varName string) ([]int16, error) {
	v, err := fr.readTypedVar(varName, I16)
	if err != nil {
		return nil, err
	}
	data, _ := v.I16()
	return data, nil
}

// ReadVarToI32 reads variable varName's data as a []int32.
func (fr *FileReader) ReadVarToI32(varName string) ([]int32, error) {
	v, err := fr.readTypedVar(varName, I32)
	if err != nil {
		return nil, err
	}
	data, _ := v.I32()
	return data, nil
}

// ReadVarToF32 reads variable varName's data as a []float32.
func (fr *FileReader) ReadVarToF32(varName string) ([]float32, error) {
	v, err := fr.readTypedVar(varName, F32)
	if err != nil {
		return nil, err
	}
	data, _ := v.F32()
	return data, nil
}

// ReadVarToF64 reads variable varName's data as a []float64.
func (fr *FileReader) ReadVarToF64(varName string) ([]float64, error) {
	v, err := fr.readTypedVar(varName, F64)
	if err != nil {
		return nil, err
	}
	data, _ := v.F64()
	return data, nil
}

func (fr *FileReader) readTypedVar(varName string, want DataType) (Value, error) {
	v := fr.ds.varByName(varName)
	if v == nil {
		return Value{}, &VariableNotDefinedError{Name: varName}
	}
	if v.dtype != want {
		return Value{}, &VariableMismatchDataTypeError{Var: varName, Expected: want, Got: v.dtype}
	}
	return fr.readVar(v)
}

// ReadAllVars reads every variable's data, returns it keyed by variable
// name, and also attaches it to the reader's dataset (so GetVarData
// subsequently returns it), reading disjoint fixed-size variables
// concurrently.
func (fr *FileReader) ReadAllVars() (map[string]Value, error) {
	var g errgroup.Group
	for _, v := range fr.ds.vars {
		v := v
		if fr.ds.IsRecordVar(v) {
			continue
		}
		g.Go(func() error {
			data, err := fr.readVar(v)
			if err != nil {
				return err
			}
			v.data = data
			v.hasData = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Record variables share interleaved storage; reading them
	// concurrently would make ReadAt calls race on the same stripes for
	// no benefit, so they're read sequentially after the fan-out above.
	for _, v := range fr.ds.vars {
		if !fr.ds.IsRecordVar(v) {
			continue
		}
		data, err := fr.readVar(v)
		if err != nil {
			return nil, err
		}
		v.data = data
		v.hasData = true
	}
	out := make(map[string]Value, len(fr.ds.vars))
	for _, v := range fr.ds.vars {
		out[v.name] = v.data
	}
	return out, nil
}

// FileWriter creates a NetCDF-3 file, accepts a header definition, and
// writes variable data into it.
type FileWriter struct {
	path       string
	f          *os.File
	ds         *DataSet
	version    Version
	layout     *Layout
	written    map[string]bool
	headerDone bool
}

func newFileWriter(path string, f *os.File) *FileWriter {
	return &FileWriter{path: path, f: f, written: map[string]bool{}}
}

// CreateFile creates path for writing, truncating it if it already
// exists.
func CreateFile(path string) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, &WriteIOError{Err: err}
	}
	if err := lockExclusive(f); err != nil {
		f.Close()
		return nil, &WriteIOError{Err: err}
	}
	return newFileWriter(path, f), nil
}

// CreateNewFile creates path for writing. It fails if the file already
// exists.
func CreateNewFile(path string) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, &WriteIOError{Err: err}
	}
	if err := lockExclusive(f); err != nil {
		f.Close()
		return nil, &WriteIOError{Err: err}
	}
	return newFileWriter(path, f), nil
}

// SetDef writes ds's header to the file, planning the on-disk layout.
// It must be called exactly once, before any WriteVar call.
func (fw *FileWriter) SetDef(ds *DataSet, version Version, headerMinSize int64) error {
	if fw.headerDone {
		return &HeaderAlreadyDefinedError{}
	}
	layout, err := PlanLayout(ds, version, headerMinSize)
	if err != nil {
		return err
	}
	ds.version = version
	sw := &sectionWriter{f: fw.f}
	if err := writeHeaderWith(sw, ds, version, int32(ds.NumRecords()), layout); err != nil {
		return &WriteIOError{Err: err}
	}
	if pad := layout.HeaderActualSize - layout.HeaderRequiredSize; pad > 0 {
		if _, err := fw.f.WriteAt(make([]byte, pad), layout.HeaderRequiredSize); err != nil {
			return &WriteIOError{Err: err}
		}
	}
	fw.ds = ds
	fw.version = version
	fw.layout = layout
	fw.headerDone = true
	return nil
}

// sectionWriter adapts *os.File to a plain io.Writer, starting at
// offset 0, for the header encoder (which never seeks on its own).
type sectionWriter struct {
	f   *os.File
	off int64
}

func (s *sectionWriter) Write(p []byte) (int, error) {
	n, err := s.f.WriteAt(p, s.off)
	s.off += int64(n)
	return n, err
}

func (fw *FileWriter) writeVar(varName string, data Value) error {
	if !fw.headerDone {
		return &HeaderNotDefinedError{}
	}
	v := fw.ds.varByName(varName)
	if v == nil {
		return &VariableNotDefinedError{Name: varName}
	}
	if data.DataType() != v.dtype {
		return &VariableMismatchDataTypeError{Var: varName, Expected: v.dtype, Got: data.DataType()}
	}
	want := fw.ds.TotalLen(v)
	if data.Len() != want {
		return &VariableMismatchDataLengthError{Var: varName, Expected: want, Got: data.Len()}
	}
	vl := fw.layout.byName(varName)
	var err error
	if !fw.ds.IsRecordVar(v) {
		err = writeFixedVar(fw.f, vl.BeginOffset, v.dtype, data)
	} else {
		err = writeRecordVar(fw.f, vl.BeginOffset, fw.ds.RecordSize(), v.dtype, fw.ds.ChunkLen(v), data)
	}
	if err != nil {
		return err
	}
	fw.written[varName] = true
	return nil
}

// WriteVarI8 writes the full data of an I8 variable.
func (fw *FileWriter) WriteVarI8(varName string, data []int8) error {
	return fw.writeVar(varName, NewValueI8(data))
}

// WriteVarU8 writes the full data of a U8 variable.
func (fw *FileWriter) WriteVarU8(varName string, data []uint8) error {
	return fw.writeVar(varName, NewValueU8(data))
}

// WriteVarI16 writes the full data of an I16 variable.
func (fw *FileWriter) WriteVarI16(varName string, data []int16) error {
	return fw.writeVar(varName, NewValueI16(data))
}

// WriteVarI32 writes the full data of an I32 variable.
func (fw *FileWriter) WriteVarI32(varName string, data []int32) error {
	return fw.writeVar(varName, NewValueI32(data))
}

// WriteVarF32 writes the full data of an F32 variable.
func (fw *FileWriter) WriteVarF32(varName string, data []float32) error {
	return fw.writeVar(varName, NewValueF32(data))
}

// WriteVarF64 writes the full data of an F64 variable.
func (fw *FileWriter) WriteVarF64(varName string, data []float64) error {
	return fw.writeVar(varName, NewValueF64(data))
}

// Close fills every variable that was never explicitly written with its
// fill value, updates the numrecs header field to reflect the dataset's
// final record count, and releases the file handle and lock.
func (fw *FileWriter) Close() error {
	if !fw.headerDone {
		return fw.f.Close()
	}
	recordSize := fw.ds.RecordSize()
	for _, v := range fw.ds.vars {
		if fw.written[v.name] {
			continue
		}
		vl := fw.layout.byName(v.name)
		chunkLen := fw.ds.ChunkLen(v)
		numChunks := fw.ds.NumChunks(v)
		for i := 0; i < numChunks; i++ {
			begin := vl.BeginOffset + int64(i)*recordSize
			if err := fillChunk(fw.f, begin, v.dtype, chunkLen); err != nil {
				return err
			}
		}
	}

	if err := fw.writeNumRecsField(); err != nil {
		return err
	}

	if err := fw.f.Close(); err != nil {
		return &WriteIOError{Err: err}
	}
	return nil
}

func (fw *FileWriter) writeNumRecsField() error {
	numrecs := numRecsFieldBytes(int64(fw.ds.NumRecords()))
	if _, err := fw.f.WriteAt(numrecs[:], numRecsOffset); err != nil {
		return &WriteIOError{Err: err}
	}
	return nil
}

// Flush rewrites the header's numrecs field from the unlimited
// dimension's current size, without closing the file. That size is the
// record count given to SetUnlimitedDim before SetDef; the dataset has
// no call that grows it afterwards. On unix platforms the open writer
// holds an exclusive advisory lock, so OpenFile on the same path fails
// until Close.
func (fw *FileWriter) Flush() error {
	if !fw.headerDone {
		return &HeaderNotDefinedError{}
	}
	return fw.writeNumRecsField()
}
