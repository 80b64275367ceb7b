// frequency.go
//
// Enterprise registry with free-text values and a value-frequency chart
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of enterprise-values.
// enterprise-values is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// enterprise-values is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with enterprise-values.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package values

import (
	"encoding/json"

	"github.com/localnerve/enterprise-values/internal/models"
)

// Frequency counts value names in order of first appearance.
// Names and Counts are parallel: Counts[i] belongs to Names[i].
type Frequency struct {
	Names  []string
	Counts []int
	index  map[string]int
}

// NewFrequency returns an empty table
func NewFrequency() *Frequency {
	return &Frequency{
		Names:  []string{},
		Counts: []int{},
		index:  make(map[string]int),
	}
}

// Add increments the count for name, appending it on first sight
func (f *Frequency) Add(name string) {
	if i, ok := f.index[name]; ok {
		f.Counts[i]++
		return
	}
	f.index[name] = len(f.Names)
	f.Names = append(f.Names, name)
	f.Counts = append(f.Counts, 1)
}

// Count returns the count for name, zero when absent
func (f *Frequency) Count(name string) int {
	if i, ok := f.index[name]; ok {
		return f.Counts[i]
	}
	return 0
}

// Len is the number of distinct names
func (f *Frequency) Len() int {
	return len(f.Names)
}

// MarshalJSON renders the parallel sequences used by the chart
func (f *Frequency) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Names  []string `json:"names"`
		Counts []int    `json:"counts"`
	}{f.Names, f.Counts})
}

// Aggregate counts every value attached to every enterprise.
// It does not touch the database; callers pass an already fetched snapshot.
func Aggregate(enterprises []models.Enterprise) *Frequency {
	freq := NewFrequency()
	for _, e := range enterprises {
		for _, v := range e.Values {
			if v == nil {
				continue
			}
			freq.Add(v.Name)
		}
	}
	return freq
}
