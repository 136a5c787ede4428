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

// Variable is a named, typed array whose shape is given by an ordered
// list of dimension references. A variable whose first dimension is the
// dataset's unlimited dimension is a "record variable"; the unlimited
// dimension, if referenced at all, must be first.
type Variable struct {
	name   string
	dimIDs []int
	dtype  DataType
	attrs  attrList
	data   Value
	hasData bool
}

// Name returns v's name.
func (v *Variable) Name() string { return v.name }

// DataType returns v's element type.
func (v *Variable) DataType() DataType { return v.dtype }

func (ds *DataSet) varByName(name string) *Variable {
	for _, v := range ds.vars {
		if v.name == name {
			return v
		}
	}
	return nil
}

// Dims returns v's dimensions in declaration order.
func (ds *DataSet) Dims(v *Variable) []*Dimension {
	out := make([]*Dimension, len(v.dimIDs))
	for i, id := range v.dimIDs {
		out[i] = ds.dimByID(id)
	}
	return out
}

// DimNames returns the names of the dimensions of variable varName.
func (ds *DataSet) DimNames(varName string) ([]string, error) {
	v := ds.varByName(varName)
	if v == nil {
		return nil, &VariableNotDefinedError{Name: varName}
	}
	out := make([]string, len(v.dimIDs))
	for i, id := range v.dimIDs {
		out[i] = ds.dimByID(id).name
	}
	return out, nil
}

// IsRecordVar reports whether v's first dimension is the dataset's
// unlimited dimension.
func (ds *DataSet) IsRecordVar(v *Variable) bool {
	if len(v.dimIDs) == 0 {
		return false
	}
	return v.dimIDs[0] == ds.unlimitedID && ds.unlimitedID >= 0
}

// ChunkLen returns the chunk length (element count) of variable v: the
// product of the sizes of all dimensions after a leading unlimited one,
// 1 for a scalar, or the product of all dimensions for a fixed-size
// variable.
func (ds *DataSet) ChunkLen(v *Variable) int {
	dims := v.dimIDs
	if ds.IsRecordVar(v) {
		dims = dims[1:]
	}
	n := 1
	for _, id := range dims {
		n *= ds.dimByID(id).size
	}
	return n
}

// ChunkSize returns the chunk size in bytes of variable v: ChunkLen
// times the element width, rounded up to a multiple of 4.
func (ds *DataSet) ChunkSize(v *Variable) int64 {
	return pad4(int64(ds.ChunkLen(v)) * int64(v.dtype.Size()))
}

// NumChunks returns the number of chunks of variable v: 1 for a fixed-
// size or scalar variable, or the unlimited dimension's size for a
// record variable.
func (ds *DataSet) NumChunks(v *Variable) int {
	if !ds.IsRecordVar(v) {
		return 1
	}
	return ds.dimByID(v.dimIDs[0]).size
}

// TotalLen returns the total element count of variable v: NumChunks
// times ChunkLen.
func (ds *DataSet) TotalLen(v *Variable) int {
	return ds.NumChunks(v) * ds.ChunkLen(v)
}

// RecordSize returns the dataset's record size: the sum of the chunk
// sizes of all record variables.
func (ds *DataSet) RecordSize() int64 {
	var sz int64
	for _, v := range ds.vars {
		if ds.IsRecordVar(v) {
			sz += ds.ChunkSize(v)
		}
	}
	return sz
}

// NumRecords returns the dataset's current record count (0 if there is
// no unlimited dimension).
func (ds *DataSet) NumRecords() int {
	if ds.unlimitedID < 0 {
		return 0
	}
	return ds.dimByID(ds.unlimitedID).size
}

// AddVar adds a new variable named name of type dtype over the named
// dimensions, in order. If the unlimited dimension is among dimNames it
// must be first.
func (ds *DataSet) AddVar(name string, dimNames []string, dtype DataType) (*Variable, error) {
	if !IsValidName(name) {
		return nil, &NameNotValidError{Name: name}
	}
	if ds.varByName(name) != nil {
		return nil, &VariableAlreadyExistsError{Name: name}
	}
	if !dtype.Valid() {
		return nil, &VariableMismatchDataTypeError{Var: name, Expected: dtype}
	}

	ids := make([]int, len(dimNames))
	var undefined []string
	for i, dn := range dimNames {
		d := ds.dimByName(dn)
		if d == nil {
			undefined = append(undefined, dn)
			continue
		}
		ids[i] = d.id
	}
	if len(undefined) > 0 {
		return nil, &DimensionsNotDefinedError{Var: name, Undefined: undefined}
	}

	if err := ds.checkDimIDs(name, ids); err != nil {
		return nil, err
	}

	v := &Variable{name: name, dimIDs: ids, dtype: dtype}
	ds.vars = append(ds.vars, v)
	return v, nil
}

// addVarUsingDimRefs adds a variable using dimension references directly
// (by id), preserving on-disk dimension identity. Used by the header
// decoder so that variables read back reference the same Dimension
// values other variables and the dataset resolved while parsing.
func (ds *DataSet) addVarUsingDimRefs(name string, dims []*Dimension, dtype DataType) (*Variable, error) {
	ids := make([]int, len(dims))
	for i, d := range dims {
		ids[i] = d.id
	}
	if err := ds.checkDimIDs(name, ids); err != nil {
		return nil, err
	}
	v := &Variable{name: name, dimIDs: ids, dtype: dtype}
	ds.vars = append(ds.vars, v)
	return v, nil
}

// checkDimIDs enforces the "no dimension repeated" and "unlimited
// dimension must be first" invariants for a candidate dimension list.
func (ds *DataSet) checkDimIDs(varName string, ids []int) error {
	seen := map[int]bool{}
	var repeated []string
	for _, id := range ids {
		if seen[id] {
			repeated = append(repeated, ds.dimByID(id).name)
		}
		seen[id] = true
	}
	if len(repeated) > 0 {
		return &DimensionsUsedMultipleTimesError{Var: varName, Dims: repeated}
	}

	if ds.unlimitedID >= 0 {
		for i, id := range ids {
			if id == ds.unlimitedID && i != 0 {
				names := make([]string, len(ids))
				for j, jd := range ids {
					names[j] = ds.dimByID(jd).name
				}
				return &UnlimitedDimensionMustBeFirstError{
					Var:       varName,
					Unlimited: ds.dimByID(ds.unlimitedID).name,
					Dims:      names,
				}
			}
		}
	}
	return nil
}

// RemoveVar removes and returns the variable named name.
func (ds *DataSet) RemoveVar(name string) (*Variable, error) {
	for i, v := range ds.vars {
		if v.name == name {
			ds.vars = append(ds.vars[:i], ds.vars[i+1:]...)
			return v, nil
		}
	}
	return nil, &VariableNotDefinedError{Name: name}
}

// RenameVar renames variable old to new. No-op if old == new.
func (ds *DataSet) RenameVar(old, new string) error {
	if old == new {
		return nil
	}
	if !IsValidName(new) {
		return &NameNotValidError{Name: new}
	}
	v := ds.varByName(old)
	if v == nil {
		return &VariableNotDefinedError{Name: old}
	}
	if ds.varByName(new) != nil {
		return &VariableAlreadyExistsError{Name: new}
	}
	v.name = new
	return nil
}

// GetVar returns the variable named name, or nil.
func (ds *DataSet) GetVar(name string) *Variable { return ds.varByName(name) }

// GetVars returns all variables in insertion order.
func (ds *DataSet) GetVars() []*Variable {
	out := make([]*Variable, len(ds.vars))
	copy(out, ds.vars)
	return out
}

// VarLen returns the total element count of variable varName.
func (ds *DataSet) VarLen(name string) (int, error) {
	v := ds.varByName(name)
	if v == nil {
		return 0, &VariableNotDefinedError{Name: name}
	}
	return ds.TotalLen(v), nil
}

// VarType returns the element type of variable varName.
func (ds *DataSet) VarType(name string) (DataType, error) {
	v := ds.varByName(name)
	if v == nil {
		return 0, &VariableNotDefinedError{Name: name}
	}
	return v.dtype, nil
}

// SetVarData attaches an in-memory data buffer to variable varName. The
// value's type and length must match the variable's declared type and
// total element count.
func (ds *DataSet) SetVarData(name string, data Value) error {
	v := ds.varByName(name)
	if v == nil {
		return &VariableNotDefinedError{Name: name}
	}
	if data.DataType() != v.dtype {
		return &VariableMismatchDataTypeError{Var: name, Expected: v.dtype, Got: data.DataType()}
	}
	want := ds.TotalLen(v)
	if data.Len() != want {
		return &VariableMismatchDataLengthError{Var: name, Expected: want, Got: data.Len()}
	}
	v.data = data
	v.hasData = true
	return nil
}

// SetVarDataI8 sets the data of an I8 variable.
func (ds *DataSet) SetVarDataI8(name string, data []int8) error {
	return ds.SetVarData(name, NewValueI8(data))
}

// SetVarDataU8 sets the data of a U8 variable.
func (ds *DataSet) SetVarDataU8(name string, data []uint8) error {
	return ds.SetVarData(name, NewValueU8(data))
}

// SetVarDataI16 sets the data of an I16 variable.
func (ds *DataSet) SetVarDataI16(name string, data []int16) error {
	return ds.SetVarData(name, NewValueI16(data))
}

// SetVarDataI32 sets the data of an I32 variable.
func (ds *DataSet) SetVarDataI32(name string, data []int32) error {
	return ds.SetVarData(name, NewValueI32(data))
}

// SetVarDataF32 sets the data of an F32 variable.
func (ds *DataSet) SetVarDataF32(name string, data []float32) error {
	return ds.SetVarData(name, NewValueF32(data))
}

// SetVarDataF64 sets the data of an F64 variable.
func (ds *DataSet) SetVarDataF64(name string, data []float64) error {
	return ds.SetVarData(name, NewValueF64(data))
}

// GetVarData returns the in-memory data buffer of variable varName, and
// whether one has been set.
func (ds *DataSet) GetVarData(name string) (Value, bool) {
	v := ds.varByName(name)
	if v == nil || !v.hasData {
		return Value{}, false
	}
	return v.data, true
}
