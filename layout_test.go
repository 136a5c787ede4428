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

import "testing"

func buildLayoutTestDataSet(t *testing.T) *DataSet {
	t.Helper()
	ds := NewDataSet()
	ds.SetUnlimitedDim("time", 2)
	ds.AddFixedDim("x", 3)
	if _, err := ds.AddVar("fixedA", []string{"x"}, I32); err != nil {
		t.Fatal(err)
	}
	if _, err := ds.AddVar("recA", []string{"time", "x"}, F64); err != nil {
		t.Fatal(err)
	}
	if _, err := ds.AddVar("fixedB", []string{"x"}, F32); err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestPlanLayoutGroupsFixedBeforeRecord(t *testing.T) {
	ds := buildLayoutTestDataSet(t)
	layout, err := PlanLayout(ds, Classic, 0)
	if err != nil {
		t.Fatal(err)
	}

	byName := func(name string) VarLayout { return *layout.byName(name) }
	fixedA, recA, fixedB := byName("fixedA"), byName("recA"), byName("fixedB")

	if fixedA.BeginOffset >= recA.BeginOffset {
		t.Errorf("fixedA (offset %d) should precede the record variable recA (offset %d)", fixedA.BeginOffset, recA.BeginOffset)
	}
	if fixedB.BeginOffset >= recA.BeginOffset {
		t.Errorf("fixedB (offset %d) should precede the record variable recA (offset %d)", fixedB.BeginOffset, recA.BeginOffset)
	}
	if fixedA.BeginOffset+fixedA.ChunkSize != fixedB.BeginOffset {
		t.Errorf("fixedB should immediately follow fixedA: fixedA ends at %d, fixedB starts at %d",
			fixedA.BeginOffset+fixedA.ChunkSize, fixedB.BeginOffset)
	}
	if fixedA.BeginOffset != layout.HeaderActualSize {
		t.Errorf("first fixed variable should start at header_actual_size %d, got %d", layout.HeaderActualSize, fixedA.BeginOffset)
	}
	if layout.HeaderActualSize%4 != 0 || layout.HeaderRequiredSize%4 != 0 {
		t.Errorf("header sizes must be 4-byte aligned: required=%d actual=%d", layout.HeaderRequiredSize, layout.HeaderActualSize)
	}
}

func TestPlanLayoutHeaderMinSizeReservesSlack(t *testing.T) {
	ds := buildLayoutTestDataSet(t)
	base, err := PlanLayout(ds, Classic, 0)
	if err != nil {
		t.Fatal(err)
	}
	slack := base.HeaderRequiredSize + 400
	withSlack, err := PlanLayout(ds, Classic, slack)
	if err != nil {
		t.Fatal(err)
	}
	if withSlack.HeaderActualSize < slack {
		t.Errorf("HeaderActualSize %d should be at least the requested minimum %d", withSlack.HeaderActualSize, slack)
	}
	if withSlack.byName("fixedA").BeginOffset != withSlack.HeaderActualSize {
		t.Errorf("variable data should start exactly at the (padded) minimum header size")
	}
}

func TestLayoutRecordsStartSkipsFixedVars(t *testing.T) {
	ds := buildLayoutTestDataSet(t)
	layout, err := PlanLayout(ds, Classic, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := layout.byName("recA").BeginOffset
	if got := layout.recordsStart(ds); got != want {
		t.Errorf("recordsStart() = %d, want %d (recA's begin offset, not header_actual_size %d)",
			got, want, layout.HeaderActualSize)
	}
}

func TestLayoutRecordsStartNoRecordVars(t *testing.T) {
	ds := NewDataSet()
	ds.SetUnlimitedDim("time", 0)
	ds.AddFixedDim("x", 3)
	ds.AddVar("fixedOnly", []string{"x"}, I32)
	layout, err := PlanLayout(ds, Classic, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := layout.recordsStart(ds); got != layout.HeaderActualSize {
		t.Errorf("recordsStart() with no record variables = %d, want header_actual_size %d", got, layout.HeaderActualSize)
	}
}

func TestPad4(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 4, 2: 4, 3: 4, 4: 4, 5: 8, 308: 308, 309: 312}
	for in, want := range cases {
		if got := pad4(in); got != want {
			t.Errorf("pad4(%d) = %d, want %d", in, got, want)
		}
	}
}
