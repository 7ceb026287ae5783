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
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
)

// Version is a parsed semantic version. Ordering follows SemVer 2.0
// precedence: major, minor, patch numerically, then prerelease identifiers;
// a release version sorts above the same version with a prerelease. Build
// metadata never participates in ordering or equality.
type Version = mmsemver.Version

// ErrInvalidFormat is returned by Parse when the input does not look like a
// semantic version. Wrap with fmt.Errorf and %w when adding context.
var ErrInvalidFormat = errors.New("invalid semantic version")

// versionRegex accepts an optional "v" prefix, a mandatory major component,
// optional minor/patch components, and optional prerelease/build suffixes.
var versionRegex = regexp.MustCompile(
	`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`,
)

// Parse validates text against the lenient version grammar, normalizes it
// (strip "v", default missing minor/patch to 0) and returns the parsed value.
// Returns ErrInvalidFormat when the text is not a version string.
//
// Parse is pure: same input, same output, no side effects.
func Parse(text string) (*Version, error) {
	m := versionRegex.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	minor, patch := m[2], m[3]
	if minor == "" {
		minor = "0"
	}
	if patch == "" {
		patch = "0"
	}

	var b strings.Builder
	b.WriteString(m[1])
	b.WriteByte('.')
	b.WriteString(minor)
	b.WriteByte('.')
	b.WriteString(patch)
	if m[4] != "" {
		b.WriteByte('-')
		b.WriteString(m[4])
	}
	if m[5] != "" {
		b.WriteByte('+')
		b.WriteString(m[5])
	}

	v, err := mmsemver.NewVersion(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	return v, nil
}

// MustParse is like Parse but panics on invalid input. Use only for
// compile-time constants and tests.
//
// Example:
//
//	var v1 = semver.MustParse("1.0.0")
func MustParse(text string) *Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Key returns the identity of a version for set membership: major, minor,
// patch and prerelease, with build metadata excluded. Two versions with the
// same Key compare equal.
func Key(v *Version) string {
	k := fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	if pre := v.Prerelease(); pre != "" {
		k += "-" + pre
	}
	return k
}

// Compare returns -1, 0, or 1 when a is less than, equal to, or greater than
// b. Build metadata is ignored.
func Compare(a, b *Version) int {
	return a.Compare(b)
}

// Sort orders versions ascending in place.
func Sort(versions []*Version) {
	slices.SortFunc(versions, Compare)
}

// Max returns the highest version, or nil for an empty slice.
func Max(versions []*Version) *Version {
	var max *Version
	for _, v := range versions {
		if max == nil || v.GreaterThan(max) {
			max = v
		}
	}
	return max
}

// Strings renders versions for logging and diagnostics.
func Strings(versions []*Version) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}
	return out
}
