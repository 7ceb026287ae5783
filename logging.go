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

import (
	"io"
	"log/slog"

	"rivaas.dev/logging"
)

// noopLogger discards everything. Components log through it until a real
// logger is injected, so logging calls never need nil checks.
var noopLogger *logging.Logger = logging.MustNew(
	logging.WithCustomLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
)
