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
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameSize is the maximum number of encoded bytes a NetCDF-3 name may
// occupy. The historical documents don't pin this down tightly; 256 is
// the value shared with the reference implementation.
const MaxNameSize = 256

// special1 = '_' '.' '@' '+' '-'
func isSpecial1(r rune) bool {
	switch r {
	case '_', '.', '@', '+', '-':
		return true
	}
	return false
}

// special2 = ' ' '!' '"' '#' '$' '%' '&' '\'' '(' ')' '*' ',' ':' ';' '<'
// '=' '>' '?' '[' '\\' ']' '^' '`' '{' '|' '}' '~'
func isSpecial2(r rune) bool {
	switch r {
	case ' ', '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', ',', ':',
		';', '<', '=', '>', '?', '[', '\\', ']', '^', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsValidName reports whether name is a valid NetCDF-3 identifier: it
// begins with an ASCII alphanumeric character or '_' (a non-ASCII first
// rune is accepted unconditionally), every subsequent rune is either
// alphanumeric or, if ASCII, drawn from the special1/special2 sets, and
// the NFC-normalized encoded form is no longer than MaxNameSize bytes.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	normalized := norm.NFC.String(name)

	first, size := utf8.DecodeRuneInString(normalized)
	if first == utf8.RuneError && size <= 1 {
		return false
	}
	if first <= unicode.MaxASCII {
		if !isAlphanumeric(first) && first != '_' {
			return false
		}
	}

	if len(normalized) > MaxNameSize {
		return false
	}

	for _, r := range normalized[size:] {
		if isAlphanumeric(r) {
			continue
		}
		if r <= unicode.MaxASCII {
			if !isSpecial1(r) && !isSpecial2(r) {
				return false
			}
		}
	}
	return true
}
