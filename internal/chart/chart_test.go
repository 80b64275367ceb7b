// chart_test.go
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

package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/localnerve/enterprise-values/internal/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrequency() *values.Frequency {
	freq := values.NewFrequency()
	freq.Add("tech")
	freq.Add("bio")
	freq.Add("tech")
	return freq
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleFrequency(), PNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleFrequency(), SVG))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, Title)
	assert.Contains(t, out, AxisLabel)
	assert.Contains(t, out, "tech")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, values.NewFrequency(), PNG))
	assert.NotZero(t, buf.Len())
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, sampleFrequency(), Format("gif")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestIntegerTicks(t *testing.T) {
	ticks := integerTicks(0, 3)
	labels := make([]string, 0, len(ticks))
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, "0 1 2 3", strings.Join(labels, " "))

	assert.LessOrEqual(t, len(integerTicks(0, 100)), 11)
}
