package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeOSF is an in-memory OSF backend for command tests: one project
// ("abc12") with a single osfstorage provider whose tree is mutable.
type fakeOSF struct {
	mu sync.Mutex

	// folders holds materialized folder paths like "/a/".
	folders map[string]bool
	// files maps materialized file paths to content.
	files map[string]string
	// md5s maps file paths to their reported hash, when set.
	md5s map[string]string

	deletes []string
	moves   []string

	srv *httptest.Server
}

func newFakeOSF(t *testing.T) *fakeOSF {
	t.Helper()

	f := &fakeOSF{
		folders: map[string]bool{},
		files:   map[string]string{},
		md5s:    map[string]string{},
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/guids/abc12/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"abc12","type":"nodes"}}`)
	})

	mux.HandleFunc("/nodes/abc12/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":{
			"id":"abc12","type":"nodes","attributes":{"title":"Test project"},
			"relationships":{"files":{"links":{"related":{"href":"%s/providers/"}}}}
		}}`, f.srv.URL)
	})

	mux.HandleFunc("/providers/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":[{
			"attributes":{"kind":"folder","name":"osfstorage","provider":"osfstorage"},
			"links":{"upload":"%[1]s/upload?parent=/","new_folder":"%[1]s/newfolder?parent=/"},
			"relationships":{"files":{"links":{"related":{"href":"%[1]s/listing/"}}}}
		}],"links":{"next":null}}`, f.srv.URL)
	})

	// The tree is served flat; entries carry no children relationship.
	mux.HandleFunc("/listing/", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		var entries []string

		folderPaths := sortedKeys(f.folders)
		for _, path := range folderPaths {
			name := strings.TrimSuffix(path, "/")
			name = name[strings.LastIndex(name, "/")+1:]

			entries = append(entries, fmt.Sprintf(`{
				"attributes":{"kind":"folder","name":%q,"materialized_path":%q},
				"links":{"upload":"%[3]s/upload?parent=%[2]s","new_folder":"%[3]s/newfolder?parent=%[2]s",
					"delete":"%[3]s/delete?path=%[2]s","move":"%[3]s/move?path=%[2]s"}
			}`, name, path, f.srv.URL))
		}

		filePaths := make([]string, 0, len(f.files))
		for path := range f.files {
			filePaths = append(filePaths, path)
		}
		sort.Strings(filePaths)

		for _, path := range filePaths {
			size := len(f.files[path])
			extra := ""
			if md5 := f.md5s[path]; md5 != "" {
				extra = fmt.Sprintf(`,"extra":{"hashes":{"md5":%q}}`, md5)
			}

			entries = append(entries, fmt.Sprintf(`{
				"attributes":{"kind":"file","name":%[1]q,"materialized_path":%[2]q,"size":%[3]d,
					"date_modified":"2026-01-02T10:00:00Z"%[4]s},
				"links":{"download":"%[5]s/download?path=%[2]s","upload":"%[5]s/update?path=%[2]s",
					"delete":"%[5]s/delete?path=%[2]s","move":"%[5]s/move?path=%[2]s"}
			}`, path[strings.LastIndex(path, "/")+1:], path, size, extra, f.srv.URL))
		}

		fmt.Fprintf(w, `{"data":[%s],"links":{"next":null}}`, strings.Join(entries, ","))
	})

	mux.HandleFunc("/download", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		fmt.Fprint(w, f.files[r.URL.Query().Get("path")])
	})

	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		path := r.URL.Query().Get("parent") + r.URL.Query().Get("name")
		if _, exists := f.files[path]; exists {
			w.WriteHeader(http.StatusConflict)
			return
		}

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		f.files[path] = string(body)

		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("/update", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		f.files[r.URL.Query().Get("path")] = string(body)
	})

	mux.HandleFunc("/newfolder", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		created := r.URL.Query().Get("parent") + r.URL.Query().Get("name") + "/"
		f.folders[created] = true

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{
			"attributes":{"kind":"folder","name":%q,"materialized_path":%q},
			"links":{"upload":"%[3]s/upload?parent=%[2]s","new_folder":"%[3]s/newfolder?parent=%[2]s"}
		}}`, r.URL.Query().Get("name"), created, f.srv.URL)
	})

	mux.HandleFunc("/delete", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		path := r.URL.Query().Get("path")
		f.deletes = append(f.deletes, path)
		delete(f.files, path)
		delete(f.folders, path)

		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/move", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		f.moves = append(f.moves, r.URL.Query().Get("path")+" -> "+string(body))

		w.WriteHeader(http.StatusCreated)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	return f
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// runCommand executes the CLI against the fake backend and returns stdout.
// The environment supplies the project and base URL; the test owns the
// working directory.
func runCommand(t *testing.T, f *fakeOSF, args ...string) (string, error) {
	t.Helper()

	t.Setenv("OSF_PROJECT", "abc12")
	t.Setenv("OSF_BASE_URL", f.srv.URL)

	cmd := newRootCmd()
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}
