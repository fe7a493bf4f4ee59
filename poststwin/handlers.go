package poststwin

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/posts-contract-tests/servicedef"
)

func (t *Twin) listPosts(w http.ResponseWriter, r *http.Request) {
	var userID ldvalue.OptionalInt
	if s := r.URL.Query().Get("userId"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusOK, []ldvalue.Value{})
			return
		}
		userID = ldvalue.NewOptionalInt(n)
	}
	writeJSON(w, http.StatusOK, t.store.List(userID))
}

func (t *Twin) createPost(w http.ResponseWriter, r *http.Request) {
	fields, ok := readObject(w, r)
	if !ok {
		return
	}
	if t.mode == ModeEcho {
		writeJSON(w, http.StatusCreated, withID(fields, t.store.NextID()))
		return
	}
	writeJSON(w, http.StatusCreated, t.store.Create(fields))
}

func (t *Twin) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	record, ok := t.store.Get(id)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (t *Twin) replacePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	fields, ok := readObject(w, r)
	if !ok {
		return
	}
	if t.mode == ModeEcho {
		if _, exists := t.store.Get(id); !exists {
			writeJSON(w, http.StatusInternalServerError, ldvalue.ObjectBuild().Build())
			return
		}
		writeJSON(w, http.StatusOK, withID(fields, id))
		return
	}
	record, ok := t.store.Replace(id, fields)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (t *Twin) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		writeNotFound(w)
		return
	}
	fields, ok := readObject(w, r)
	if !ok {
		return
	}
	if t.mode == ModeEcho {
		old, exists := t.store.Get(id)
		if !exists {
			old = ldvalue.ObjectBuild().Build()
		}
		writeJSON(w, http.StatusOK, withID(servicedef.Merge(old, fields), id))
		return
	}
	record, ok := t.store.Update(id, fields)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (t *Twin) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if t.mode == ModeEcho {
		writeJSON(w, http.StatusOK, ldvalue.ObjectBuild().Build())
		return
	}
	if !ok || !t.store.Delete(id) {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, ldvalue.ObjectBuild().Build())
}

func postID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// readObject decodes the request body as a JSON object. An empty body is an empty object. If
// the body is anything else, it writes a 400 response and returns false.
func readObject(w http.ResponseWriter, r *http.Request) (ldvalue.Value, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return ldvalue.Null(), false
	}
	if len(data) == 0 {
		return ldvalue.ObjectBuild().Build(), true
	}
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return ldvalue.Null(), false
	}
	if v.Type() != ldvalue.ObjectType {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return ldvalue.Null(), false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, ldvalue.ObjectBuild().Build())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ldvalue.ObjectBuild().Set("error", ldvalue.String(message)).Build())
}
