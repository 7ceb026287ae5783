// Copyright 2025 The Apiversion Authors
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

package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "full_version", input: "1.2.3", want: "1.2.3"},
		{name: "bare_major", input: "2", want: "2.0.0"},
		{name: "major_minor", input: "2.1", want: "2.1.0"},
		{name: "v_prefix", input: "v2.0.0", want: "2.0.0"},
		{name: "v_prefix_bare_major", input: "v3", want: "3.0.0"},
		{name: "prerelease", input: "1.0.0-alpha.1", want: "1.0.0-alpha.1"},
		{name: "prerelease_without_patch", input: "1.0-beta", want: "1.0.0-beta"},
		{name: "build_metadata", input: "1.0.0+build.7", want: "1.0.0+build.7"},
		{name: "prerelease_and_build", input: "1.0.0-rc.1+linux", want: "1.0.0-rc.1+linux"},
		{name: "zero_version", input: "0", want: "0.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not_a_version", input: "latest"},
		{name: "too_many_components", input: "1.2.3.4"},
		{name: "trailing_dot", input: "1.2."},
		{name: "empty_prerelease", input: "1.0.0-"},
		{name: "empty_build", input: "1.0.0+"},
		{name: "negative_major", input: "-1.0.0"},
		{name: "whitespace", input: " 1.0.0"},
		{name: "invalid_characters", input: "1.0.0-beta_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestParseNormalization(t *testing.T) {
	t.Parallel()

	// "2", "2.0", "2.0.0" and "v2.0.0" all denote the same version.
	want := MustParse("2.0.0")
	for _, input := range []string{"2", "2.0", "2.0.0", "v2.0.0", "v2"} {
		v, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.True(t, v.Equal(want), "input %q parsed as %s", input, v)
	}
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{"1.2.3", "v2", "2.1", "1.0.0-alpha", "1.0.0-rc.2+build.9"}
	for _, input := range inputs {
		first := MustParse(input)
		second, err := Parse(first.String())
		require.NoError(t, err)
		assert.True(t, first.Equal(second), "round trip changed %q", input)
		assert.Equal(t, Key(first), Key(second))
	}
}

func TestOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "patch_increment", a: "1.2.0", b: "1.2.1", want: -1},
		{name: "minor_beats_patch", a: "1.2.1", b: "1.3.0", want: -1},
		{name: "major_beats_minor", a: "1.9.9", b: "2.0.0", want: -1},
		{name: "prerelease_below_release", a: "1.0.0-alpha", b: "1.0.0", want: -1},
		{name: "prerelease_ordering", a: "1.0.0-alpha", b: "1.0.0-beta", want: -1},
		{name: "equal", a: "1.0.0", b: "v1", want: 0},
		{name: "build_ignored", a: "1.0.0+build1", b: "1.0.0+build2", want: 0},
		{name: "greater", a: "2.0.0", b: "1.9.0", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tt.a), MustParse(tt.b)
			assert.Equal(t, tt.want, Compare(a, b))
			assert.Equal(t, -tt.want, Compare(b, a))

			// Exactly one of <, ==, > holds.
			states := 0
			if a.LessThan(b) {
				states++
			}
			if a.Equal(b) {
				states++
			}
			if a.GreaterThan(b) {
				states++
			}
			assert.Equal(t, 1, states)
		})
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.2.3", Key(MustParse("1.2.3")))
	assert.Equal(t, "1.0.0-alpha", Key(MustParse("1.0.0-alpha")))

	// Build metadata is excluded from identity.
	assert.Equal(t, Key(MustParse("1.0.0+linux")), Key(MustParse("1.0.0+darwin")))

	// Prerelease is part of identity.
	assert.NotEqual(t, Key(MustParse("1.0.0-alpha")), Key(MustParse("1.0.0")))
}

func TestSortAndMax(t *testing.T) {
	t.Parallel()

	versions := []*Version{
		MustParse("2.0.0"),
		MustParse("1.0.0-alpha"),
		MustParse("1.0.0"),
		MustParse("1.5.0"),
	}

	Sort(versions)
	assert.Equal(t, []string{"1.0.0-alpha", "1.0.0", "1.5.0", "2.0.0"}, Strings(versions))
	assert.Equal(t, "2.0.0", Max(versions).String())

	assert.Nil(t, Max(nil))
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParse("not-a-version") })
	assert.NotPanics(t, func() { MustParse("1.0.0") })
}
