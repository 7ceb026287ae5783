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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestTableDispatch(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Register(Must(GET("/users", textHandler("users"))))
	table.Handle("post", "/users", textHandler("created"))

	t.Run("exact match", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		table.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "users", rec.Body.String())
	})

	t.Run("handle normalizes the verb", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		table.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", nil))
		assert.Equal(t, "created", rec.Body.String())
	})

	t.Run("unknown path is 404", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		table.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong method is 405 with allow header", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		table.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	})
}

func TestTableRegister(t *testing.T) {
	t.Parallel()

	t.Run("one route per declared verb", func(t *testing.T) {
		t.Parallel()
		table := NewTable()
		table.Register(Must(Annotate(textHandler("x"), "/things", []string{"GET", "POST"})))
		assert.Len(t, table.Routes(), 2)
	})

	t.Run("same verb and path replaces", func(t *testing.T) {
		t.Parallel()
		table := NewTable()
		table.Register(Must(GET("/users", textHandler("old"))))
		table.Register(Must(GET("/users", textHandler("new"))))

		require.Len(t, table.Routes(), 1)
		rec := httptest.NewRecorder()
		table.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
		assert.Equal(t, "new", rec.Body.String())
	})
}

func TestTableSetRoutes(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Register(
		Must(GET("/users", textHandler("users"))),
		Must(GET("/orders", textHandler("orders"))),
	)

	kept := table.Routes()[:1]
	table.SetRoutes(kept)

	assert.Len(t, table.Routes(), 1)

	rec := httptest.NewRecorder()
	table.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTableRoutesSnapshot(t *testing.T) {
	t.Parallel()

	table := NewTable()
	table.Register(Must(GET("/users", textHandler("users"))))

	snapshot := table.Routes()
	snapshot[0].Path = "/mutated"

	rec := httptest.NewRecorder()
	table.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTablePathAttributes(t *testing.T) {
	t.Parallel()

	table := NewTable(
		WithDocsPaths("/docs", "/redoc"),
		WithOpenAPIPath("/openapi.json"),
	)
	assert.Equal(t, []string{"/docs", "/redoc"}, table.DocsPaths())
	assert.Equal(t, "/openapi.json", table.OpenAPIPath())
}
