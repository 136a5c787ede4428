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

// pad4 rounds x up to the nearest multiple of 4.
func pad4(x int64) int64 { return (x + 3) &^ 3 }

// VarLayout is the layout planner's output for a single variable: its
// dimension ids (as stored on the variable), its chunk size in bytes,
// and the absolute byte offset of its first chunk.
type VarLayout struct {
	Var        *Variable
	DimIDs     []int
	ChunkSize  int64
	BeginOffset int64
}

// Layout is the full output of the layout planner.
type Layout struct {
	HeaderRequiredSize int64
	HeaderActualSize   int64
	// Vars is indexed the same way as the dataset's variable list
	// (header order), not layout (fixed-then-record) order.
	Vars []VarLayout
}

// byName returns the layout entry for the named variable, or nil.
func (l *Layout) byName(name string) *VarLayout {
	for i := range l.Vars {
		if l.Vars[i].Var.name == name {
			return &l.Vars[i]
		}
	}
	return nil
}

// recordsStart returns the begin offset of the record region: the
// minimum begin offset among ds's record variables. It returns
// HeaderActualSize if ds has no record variables, since that case never
// reaches a record-region byte count anyway.
func (l *Layout) recordsStart(ds *DataSet) int64 {
	start := l.HeaderActualSize
	first := true
	for _, vl := range l.Vars {
		if !ds.IsRecordVar(vl.Var) {
			continue
		}
		if first || vl.BeginOffset < start {
			start = vl.BeginOffset
			first = false
		}
	}
	return start
}

// PlanLayout computes header_required_size, header_actual_size, and
// per-variable offsets for ds under the given version. headerMinSize is
// a caller-provided minimum for header_actual_size (useful to leave
// slack for attributes added later in streaming write scenarios); it is
// rounded, along with header_required_size, up to the next multiple of
// 4.
//
// Offsets are assigned fixed-size variables first (in their header
// order), then record variables (also in their header order), both
// groups laid out contiguously starting at header_actual_size. Under
// Classic, an offset that would exceed the signed 32-bit range fails
// planning with *ClassicVersionNotPossibleError.
func PlanLayout(ds *DataSet, version Version, headerMinSize int64) (*Layout, error) {
	required := headerSize(ds, version)
	actual := required
	if headerMinSize > actual {
		actual = headerMinSize
	}
	actual = pad4(actual)

	layout := &Layout{HeaderRequiredSize: required, HeaderActualSize: actual}
	layout.Vars = make([]VarLayout, len(ds.vars))
	for i, v := range ds.vars {
		layout.Vars[i] = VarLayout{
			Var:       v,
			DimIDs:    append([]int(nil), v.dimIDs...),
			ChunkSize: ds.ChunkSize(v),
		}
	}

	offset := actual
	assign := func(wantRecord bool) error {
		for i, v := range ds.vars {
			if ds.IsRecordVar(v) != wantRecord {
				continue
			}
			if version == Classic && offset > (1<<31-1) {
				return &ClassicVersionNotPossibleError{Offset: offset}
			}
			layout.Vars[i].BeginOffset = offset
			offset += layout.Vars[i].ChunkSize
		}
		return nil
	}
	if err := assign(false); err != nil {
		return nil, err
	}
	if err := assign(true); err != nil {
		return nil, err
	}
	return layout, nil
}
