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

// Package semver parses and compares the semantic version values used to tag
// API routes.
//
// The parser is deliberately lenient on input: a leading "v" is accepted and
// stripped, and missing minor/patch components default to zero, so "2", "2.1",
// "v2.1.0" and "2.1.0" all denote the same version. The parsed value itself is
// a full SemVer 2.0 version with the standard total order; build metadata is
// carried through but excluded from both ordering and equality.
//
// Example:
//
//	v, err := semver.Parse("v2.1")
//	if err != nil {
//	    // not a version string
//	}
//	v.String() // "2.1.0"
package semver
