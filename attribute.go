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

// Attribute is a named typed value attached either to a DataSet (a
// global attribute) or to a single Variable.
type Attribute struct {
	name  string
	value Value
}

// Name returns a's name.
func (a *Attribute) Name() string { return a.name }

// Value returns a's value.
func (a *Attribute) Value() Value { return a.value }

// attrList is the ordered list of attributes belonging to either the
// dataset (global) or a single variable. Order of appearance is
// preserved since it affects the on-disk byte layout.
type attrList struct {
	items []*Attribute
}

func (l *attrList) byName(name string) *Attribute {
	for _, a := range l.items {
		if a.name == name {
			return a
		}
	}
	return nil
}

// add appends a new attribute. Callers check for an existing attribute
// of the same name first, since the already-exists error needs the
// variable name (or lack thereof) that only the caller knows.
func (l *attrList) add(name string, value Value) (*Attribute, error) {
	if !IsValidName(name) {
		return nil, &NameNotValidError{Name: name}
	}
	a := &Attribute{name: name, value: value}
	l.items = append(l.items, a)
	return a, nil
}

func (l *attrList) remove(name string) *Attribute {
	for i, a := range l.items {
		if a.name == name {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return a
		}
	}
	return nil
}

func (l *attrList) rename(old, new string) bool {
	a := l.byName(old)
	if a == nil {
		return false
	}
	a.name = new
	return true
}

func (l *attrList) all() []*Attribute {
	out := make([]*Attribute, len(l.items))
	copy(out, l.items)
	return out
}

// --- global attributes ---

// AddGlobalAttr adds a global attribute of arbitrary type.
func (ds *DataSet) AddGlobalAttr(name string, value Value) (*Attribute, error) {
	if ds.globalAttrs.byName(name) != nil {
		return nil, &AttributeAlreadyExistsError{Attr: name}
	}
	return ds.globalAttrs.add(name, value)
}

// AddGlobalAttrI8 adds a global attribute of type I8.
func (ds *DataSet) AddGlobalAttrI8(name string, data []int8) (*Attribute, error) {
	return ds.AddGlobalAttr(name, NewValueI8(data))
}

// AddGlobalAttrU8 adds a global attribute of type U8.
func (ds *DataSet) AddGlobalAttrU8(name string, data []uint8) (*Attribute, error) {
	return ds.AddGlobalAttr(name, NewValueU8(data))
}

// AddGlobalAttrChar adds a global attribute of type U8 from a string.
func (ds *DataSet) AddGlobalAttrChar(name string, s string) (*Attribute, error) {
	return ds.AddGlobalAttr(name, NewValueU8([]byte(s)))
}

// AddGlobalAttrI16 adds a global attribute of type I16.
func (ds *DataSet) AddGlobalAttrI16(name string, data []int16) (*Attribute, error) {
	return ds.AddGlobalAttr(name, NewValueI16(data))
}

// AddGlobalAttrI32 adds a global attribute of type I32.
func (ds *DataSet) AddGlobalAttrI32(name string, data []int32) (*Attribute, error) {
	return ds.AddGlobalAttr(name, NewValueI32(data))
}

// AddGlobalAttrF32 adds a global attribute of type F32.
func (ds *DataSet) AddGlobalAttrF32(name string, data []float32) (*Attribute, error) {
	return ds.AddGlobalAttr(name, NewValueF32(data))
}

// AddGlobalAttrF64 adds a global attribute of type F64.
func (ds *DataSet) AddGlobalAttrF64(name string, data []float64) (*Attribute, error) {
	return ds.AddGlobalAttr(name, NewValueF64(data))
}

// RemoveGlobalAttr removes and returns the global attribute named name.
func (ds *DataSet) RemoveGlobalAttr(name string) (*Attribute, error) {
	a := ds.globalAttrs.remove(name)
	if a == nil {
		return nil, &AttributeNotDefinedError{Attr: name}
	}
	return a, nil
}

// RenameGlobalAttr renames global attribute old to new. No-op if equal.
func (ds *DataSet) RenameGlobalAttr(old, new string) error {
	if old == new {
		return nil
	}
	if !IsValidName(new) {
		return &NameNotValidError{Name: new}
	}
	if ds.globalAttrs.byName(old) == nil {
		return &AttributeNotDefinedError{Attr: old}
	}
	if ds.globalAttrs.byName(new) != nil {
		return &AttributeAlreadyExistsError{Attr: new}
	}
	ds.globalAttrs.rename(old, new)
	return nil
}

// GetGlobalAttr returns the global attribute named name, or nil.
func (ds *DataSet) GetGlobalAttr(name string) *Attribute { return ds.globalAttrs.byName(name) }

// GetGlobalAttrs returns all global attributes in insertion order.
func (ds *DataSet) GetGlobalAttrs() []*Attribute { return ds.globalAttrs.all() }

// --- per-variable attributes ---

// AddVarAttr adds an attribute of arbitrary type to variable varName.
func (ds *DataSet) AddVarAttr(varName, attrName string, value Value) (*Attribute, error) {
	v := ds.varByName(varName)
	if v == nil {
		return nil, &VariableNotDefinedError{Name: varName}
	}
	if v.attrs.byName(attrName) != nil {
		return nil, &AttributeAlreadyExistsError{Var: varName, Attr: attrName}
	}
	return v.attrs.add(attrName, value)
}

// AddVarAttrI8 adds an I8 attribute to variable varName.
func (ds *DataSet) AddVarAttrI8(varName, attrName string, data []int8) (*Attribute, error) {
	return ds.AddVarAttr(varName, attrName, NewValueI8(data))
}

// AddVarAttrU8 adds a U8 attribute to variable varName.
func (ds *DataSet) AddVarAttrU8(varName, attrName string, data []uint8) (*Attribute, error) {
	return ds.AddVarAttr(varName, attrName, NewValueU8(data))
}

// AddVarAttrChar adds a U8 attribute from a string to variable varName.
func (ds *DataSet) AddVarAttrChar(varName, attrName string, s string) (*Attribute, error) {
	return ds.AddVarAttr(varName, attrName, NewValueU8([]byte(s)))
}

// AddVarAttrI16 adds an I16 attribute to variable varName.
func (ds *DataSet) AddVarAttrI16(varName, attrName string, data []int16) (*Attribute, error) {
	return ds.AddVarAttr(varName, attrName, NewValueI16(data))
}

// AddVarAttrI32 adds an I32 attribute to variable varName.
func (ds *DataSet) AddVarAttrI32(varName, attrName string, data []int32) (*Attribute, error) {
	return ds.AddVarAttr(varName, attrName, NewValueI32(data))
}

// AddVarAttrF32 adds an F32 attribute to variable varName.
func (ds *DataSet) AddVarAttrF32(varName, attrName string, data []float32) (*Attribute, error) {
	return ds.AddVarAttr(varName, attrName, NewValueF32(data))
}

// AddVarAttrF64 adds an F64 attribute to variable varName.
func (ds *DataSet) AddVarAttrF64(varName, attrName string, data []float64) (*Attribute, error) {
	return ds.AddVarAttr(varName, attrName, NewValueF64(data))
}

// RemoveVarAttr removes and returns the attribute attrName from variable
// varName.
func (ds *DataSet) RemoveVarAttr(varName, attrName string) (*Attribute, error) {
	v := ds.varByName(varName)
	if v == nil {
		return nil, &VariableNotDefinedError{Name: varName}
	}
	a := v.attrs.remove(attrName)
	if a == nil {
		return nil, &AttributeNotDefinedError{Var: varName, Attr: attrName}
	}
	return a, nil
}

// RenameVarAttr renames attribute old to new on variable varName. No-op
// if old == new.
func (ds *DataSet) RenameVarAttr(varName, old, new string) error {
	if old == new {
		return nil
	}
	v := ds.varByName(varName)
	if v == nil {
		return &VariableNotDefinedError{Name: varName}
	}
	if !IsValidName(new) {
		return &NameNotValidError{Name: new}
	}
	if v.attrs.byName(old) == nil {
		return &AttributeNotDefinedError{Var: varName, Attr: old}
	}
	if v.attrs.byName(new) != nil {
		return &AttributeAlreadyExistsError{Var: varName, Attr: new}
	}
	v.attrs.rename(old, new)
	return nil
}

// GetVarAttr returns the attribute attrName of variable varName, or nil
// if either does not exist.
func (ds *DataSet) GetVarAttr(varName, attrName string) *Attribute {
	v := ds.varByName(varName)
	if v == nil {
		return nil
	}
	return v.attrs.byName(attrName)
}

// GetVarAttrs returns all attributes of variable varName in insertion
// order, or nil if the variable does not exist.
func (ds *DataSet) GetVarAttrs(varName string) []*Attribute {
	v := ds.varByName(varName)
	if v == nil {
		return nil
	}
	return v.attrs.all()
}
