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

// Package netcdf3 reads and writes files in the NetCDF classic format
// (the "classic" 32-bit-offset variant and the "64-bit offset" variant).
// The HDF5-based NetCDF-4 format is not supported.
//
// The data model and file format are documented at
//	https://docs.unidata.ucar.edu/nug/current/file_format_specifications.html
//
// A NetCDF-3 file has a self-describing header defining dimensions,
// attributes and variables, followed by a data section laid out as
// contiguous fixed-size variables followed by a record-interleaved
// section for variables that depend on the unlimited dimension.
//
// To create a file:
//
//	ds := netcdf3.NewDataSet()
//	ds.SetUnlimitedDim("time", 1)
//	ds.AddFixedDim("x", 3)
//	ds.AddVar("psi", []string{"time", "x"}, netcdf3.F32)
//	ds.AddGlobalAttrChar("comment", "This is a test file")
//
//	w, _ := netcdf3.CreateFile("/path/to/file")
//	w.SetDef(ds, netcdf3.Classic, 0)
//	w.WriteVarF32("psi", []float32{1, 2, 3})
//	w.Close()
//
// To read an existing file:
//
//	r, _ := netcdf3.OpenFile("/path/to/file")
//	buf, _ := r.ReadVar("psi")
//	r.Close()
package netcdf3
