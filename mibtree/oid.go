// Copyright 2025 Edgeo SCADA
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

package mibtree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// OID represents an SNMP Object Identifier.
type OID []uint32

// String returns the dotted-decimal string representation.
func (o OID) String() string {
	if len(o) == 0 {
		return ""
	}
	parts := make([]string, len(o))
	for i, n := range o {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, ".")
}

// ParseOID parses a dotted-decimal OID string.
func ParseOID(s string) (OID, error) {
	// Remove leading dot if present
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, ErrInvalidOID
	}

	parts := strings.Split(s, ".")
	oid := make(OID, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: component '%s'", ErrInvalidOID, p)
		}
		oid[i] = uint32(n)
	}

	return oid, nil
}

// MustParseOID parses an OID string and panics on error.
func MustParseOID(s string) OID {
	oid, err := ParseOID(s)
	if err != nil {
		panic(err)
	}
	return oid
}

// IsNumericOID reports whether s looks like a dotted-decimal OID rather
// than a symbolic name.
func IsNumericOID(s string) bool {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}

// Equal checks if two OIDs are equal.
func (o OID) Equal(other OID) bool {
	return slices.Equal(o, other)
}

// Compare orders OIDs lexicographically by arc.
func (o OID) Compare(other OID) int {
	return slices.Compare(o, other)
}

// HasPrefix checks if the OID starts with the given prefix.
func (o OID) HasPrefix(prefix OID) bool {
	if len(prefix) > len(o) {
		return false
	}
	return slices.Equal(o[:len(prefix)], prefix)
}

// Parent returns the OID without its last arc, or nil for a single arc.
func (o OID) Parent() OID {
	if len(o) <= 1 {
		return nil
	}
	return slices.Clone(o[:len(o)-1])
}

// Child returns a new OID with arc appended.
func (o OID) Child(arc uint32) OID {
	c := make(OID, len(o)+1)
	copy(c, o)
	c[len(o)] = arc
	return c
}

// SubID returns the last arc, or 0 for an empty OID.
func (o OID) SubID() uint32 {
	if len(o) == 0 {
		return 0
	}
	return o[len(o)-1]
}

// Copy returns a copy of the OID.
func (o OID) Copy() OID {
	return slices.Clone(o)
}
