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

package apiversion

import "errors"

// Static errors for declaration and configuration validation.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	// Declaration errors
	ErrNilHandler = errors.New("handler cannot be nil")
	ErrEmptyPath  = errors.New("path cannot be empty")

	// Registry errors
	ErrUnknownVersion = errors.New("version not registered")

	// Negotiator errors
	ErrEmptyVendorPrefix = errors.New("vendor prefix cannot be empty")

	// Manager errors
	ErrNilRouter = errors.New("router cannot be nil")
)
