// values_test.go
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
	"strings"
	"testing"

	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		sep  string
		want []string
	}{
		{"case-insensitive duplicates", "AAA, aaa, BBB", ",", []string{"aaa", "bbb"}},
		{"empty", "", ",", []string{}},
		{"blank", "   ", ",", []string{}},
		{"first occurrence order", "Tech, bio,TECH , Bio, green", ",", []string{"tech", "bio", "green"}},
		{"mixed case survivor is lowered", "a, a, B", ",", []string{"a", "b"}},
		{"separator not present", "one two", ",", []string{"one two"}},
		{"space separator", "x  y", " ", []string{"x", "", "y"}},
		{"empty pieces collapse", "a,,b,", ",", []string{"a", "", "b"}},
		{"unicode", "Ñandú, ñANDÚ", ",", []string{"ñandú"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw, tt.sep))
		})
	}
}

func TestParseResultIsLowercaseAndDistinct(t *testing.T) {
	inputs := []string{
		"Alpha, BETA, alpha, Gamma, beta, GAMMA, delta",
		"X;x;Y;y;Z",
		"  Mixed Case ,mixed case, MIXED CASE  ",
	}
	seps := []string{",", ";", ","}

	for i, raw := range inputs {
		got := Parse(raw, seps[i])
		seen := make(map[string]bool)
		for _, tag := range got {
			assert.Equal(t, strings.ToLower(tag), tag)
			assert.False(t, seen[tag], "duplicate %q in %v", tag, got)
			seen[tag] = true
		}
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "", Display(nil))
	assert.Equal(t, "tech", Display([]string{"tech"}))
	assert.Equal(t, "tech, bio", Display(Parse("Tech,BIO", ",")))
}

func TestAggregateEmpty(t *testing.T) {
	freq := Aggregate(nil)
	assert.Equal(t, 0, freq.Len())
	assert.Empty(t, freq.Names)
	assert.Empty(t, freq.Counts)
}

func TestAggregateKeepsFirstAppearanceOrder(t *testing.T) {
	tech := &models.Value{Name: "tech"}
	bio := &models.Value{Name: "bio"}

	freq := Aggregate([]models.Enterprise{
		{Name: "One", Values: []*models.Value{tech}},
		{Name: "Two", Values: []*models.Value{bio, tech}},
	})

	assert.Equal(t, []string{"tech", "bio"}, freq.Names)
	assert.Equal(t, []int{2, 1}, freq.Counts)
	assert.Equal(t, 2, freq.Count("tech"))
	assert.Equal(t, 1, freq.Count("bio"))
	assert.Equal(t, 0, freq.Count("green"))
}

func TestFrequencyJSON(t *testing.T) {
	freq := NewFrequency()
	freq.Add("tech")
	freq.Add("bio")
	freq.Add("tech")

	out, err := json.Marshal(freq)
	require.NoError(t, err)
	assert.JSONEq(t, `{"names":["tech","bio"],"counts":[2,1]}`, string(out))

	empty, err := json.Marshal(NewFrequency())
	require.NoError(t, err)
	assert.JSONEq(t, `{"names":[],"counts":[]}`, string(empty))
}
