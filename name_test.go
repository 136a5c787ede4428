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
	"strings"
	"testing"
)

func TestIsValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"x", true},
		{"_underscore", true},
		{"time", true},
		{"a.b-c+d@e", true},
		{"", false},
		{" leadingspace", false},
		{"has space", true},
		{"tab\tchar", false},
		{"héllo", true},
		{strings.Repeat("a", MaxNameSize), true},
		{strings.Repeat("a", MaxNameSize+1), false},
	}
	for _, c := range cases {
		if got := IsValidName(c.name); got != c.want {
			t.Errorf("IsValidName(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
