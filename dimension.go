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

// DimKind distinguishes a fixed-size dimension from the dataset's (at
// most one) unlimited dimension.
type DimKind int

const (
	FixedDim DimKind = iota
	UnlimitedDim
)

func (k DimKind) String() string {
	if k == UnlimitedDim {
		return "unlimited"
	}
	return "fixed"
}

// Dimension is a named axis of a DataSet. Dimensions are identified
// internally by a stable id assigned at creation time, not by their
// position in the dataset's dimension list, so a rename is visible
// through every variable that references the dimension and removing an
// unrelated dimension never invalidates another variable's reference.
type Dimension struct {
	id   int
	name string
	size int // for the unlimited dimension, this is the current record count
	kind DimKind
}

// Name returns d's current name.
func (d *Dimension) Name() string { return d.name }

// Size returns d's current size (the record count, for the unlimited
// dimension).
func (d *Dimension) Size() int { return d.size }

// Kind reports whether d is fixed or the dataset's unlimited dimension.
func (d *Dimension) Kind() DimKind { return d.kind }

// dimByID returns the dimension with the given id, or nil.
func (ds *DataSet) dimByID(id int) *Dimension {
	for _, d := range ds.dims {
		if d.id == id {
			return d
		}
	}
	return nil
}

// dimByName returns the dimension with the given name, or nil.
func (ds *DataSet) dimByName(name string) *Dimension {
	for _, d := range ds.dims {
		if d.name == name {
			return d
		}
	}
	return nil
}

// AddFixedDim adds a new fixed-size dimension named name with the given
// size.
func (ds *DataSet) AddFixedDim(name string, size int) (*Dimension, error) {
	if !IsValidName(name) {
		return nil, &NameNotValidError{Name: name}
	}
	if ds.dimByName(name) != nil {
		return nil, &DimensionAlreadyExistsError{Name: name}
	}
	d := &Dimension{id: ds.nextDimID, name: name, size: size, kind: FixedDim}
	ds.nextDimID++
	ds.dims = append(ds.dims, d)
	return d, nil
}

// SetUnlimitedDim adds a new unlimited dimension named name with the
// given initial record count. It fails if the dataset already has an
// unlimited dimension.
func (ds *DataSet) SetUnlimitedDim(name string, size int) (*Dimension, error) {
	if !IsValidName(name) {
		return nil, &NameNotValidError{Name: name}
	}
	if ds.unlimitedID >= 0 {
		return nil, &UnlimitedDimensionAlreadyExistsError{Name: ds.dimByID(ds.unlimitedID).name}
	}
	if ds.dimByName(name) != nil {
		return nil, &DimensionAlreadyExistsError{Name: name}
	}
	d := &Dimension{id: ds.nextDimID, name: name, size: size, kind: UnlimitedDim}
	ds.nextDimID++
	ds.dims = append(ds.dims, d)
	ds.unlimitedID = d.id
	return d, nil
}

// HasUnlimitedDim reports whether the dataset has an unlimited dimension.
func (ds *DataSet) HasUnlimitedDim() bool { return ds.unlimitedID >= 0 }

// GetUnlimitedDim returns the dataset's unlimited dimension, or nil.
func (ds *DataSet) GetUnlimitedDim() *Dimension {
	if ds.unlimitedID < 0 {
		return nil
	}
	return ds.dimByID(ds.unlimitedID)
}

// GetDim returns the dimension named name, or nil.
func (ds *DataSet) GetDim(name string) *Dimension { return ds.dimByName(name) }

// GetDims returns all dimensions in insertion order.
func (ds *DataSet) GetDims() []*Dimension {
	out := make([]*Dimension, len(ds.dims))
	copy(out, ds.dims)
	return out
}

// DimSize returns the size of the dimension named name.
func (ds *DataSet) DimSize(name string) (int, error) {
	d := ds.dimByName(name)
	if d == nil {
		return 0, &DimensionNotDefinedError{Name: name}
	}
	return d.size, nil
}

// DimKindOf returns the kind of the dimension named name.
func (ds *DataSet) DimKindOf(name string) (DimKind, error) {
	d := ds.dimByName(name)
	if d == nil {
		return 0, &DimensionNotDefinedError{Name: name}
	}
	return d.kind, nil
}

// RemoveDim removes and returns the dimension named name. It fails with
// *DimensionStillUsedError if any variable still references it.
func (ds *DataSet) RemoveDim(name string) (*Dimension, error) {
	d := ds.dimByName(name)
	if d == nil {
		return nil, &DimensionNotDefinedError{Name: name}
	}
	var refs []string
	for _, v := range ds.vars {
		for _, id := range v.dimIDs {
			if id == d.id {
				refs = append(refs, v.name)
				break
			}
		}
	}
	if len(refs) > 0 {
		return nil, &DimensionStillUsedError{Vars: refs, Dim: name}
	}
	for i, dd := range ds.dims {
		if dd.id == d.id {
			ds.dims = append(ds.dims[:i], ds.dims[i+1:]...)
			break
		}
	}
	if ds.unlimitedID == d.id {
		ds.unlimitedID = -1
	}
	return d, nil
}

// RenameDim renames dimension old to new. It is a no-op if old == new.
func (ds *DataSet) RenameDim(old, new string) error {
	if old == new {
		return nil
	}
	if !IsValidName(new) {
		return &NameNotValidError{Name: new}
	}
	d := ds.dimByName(old)
	if d == nil {
		return &DimensionNotDefinedError{Name: old}
	}
	if ds.dimByName(new) != nil {
		return &DimensionAlreadyExistsError{Name: new}
	}
	d.name = new
	return nil
}

// ResolveDimsByIDs returns the dimensions named by ids, in order. It
// fails if any id does not refer to a dimension of the dataset.
func (ds *DataSet) ResolveDimsByIDs(ids []int) ([]*Dimension, error) {
	out := make([]*Dimension, len(ids))
	var bad []int
	for i, id := range ids {
		d := ds.dimByID(id)
		if d == nil {
			bad = append(bad, id)
			continue
		}
		out[i] = d
	}
	if len(bad) > 0 {
		return nil, &DimensionIdsInvalidError{Ids: bad}
	}
	return out, nil
}

// dimID returns d's stable id, for use in a Variable's dimension list.
func (d *Dimension) dimID() int { return d.id }
