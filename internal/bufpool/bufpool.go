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

// Package bufpool provides a pool of reusable byte slices for the
// chunk-sized reads and writes performed when moving variable data
// between a DataSet and a file.
package bufpool

import "sync"

var pool = sync.Pool{
	New: func() interface{} { return new([]byte) },
}

// Get returns a byte slice with length n. Its contents are not zeroed.
func Get(n int) []byte {
	bp := pool.Get().(*[]byte)
	b := *bp
	if cap(b) < n {
		b = make([]byte, n)
	} else {
		b = b[:n]
	}
	return b
}

// Put returns b to the pool for reuse.
func Put(b []byte) {
	pool.Put(&b)
}
