package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// lookup resolves the collection of the request, writing a 404 when it is
// unknown. The caller must hold s.mu.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*collection, bool) {
	coll, ok := s.data[chi.URLParam(r, "resource")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return nil, false
	}
	return coll, true
}

func (s *Server) handleList(deleted bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		coll, ok := s.lookup(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, coll.list(deleted))
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookup(w, r)
	if !ok {
		return
	}
	record, ok := coll.records[chi.URLParam(r, "id")]
	if !ok || isDeleted(record) {
		writeDetail(w, http.StatusNotFound, "Record not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": "Field required", "type": "missing"}},
		})
		return
	}

	resource := chi.URLParam(r, "resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var missing []map[string]any
	for _, field := range s.required[resource] {
		if value, ok := body[field]; !ok || value == nil || value == "" {
			missing = append(missing, map[string]any{
				"loc":  []string{"body", field},
				"msg":  "Field required",
				"type": "missing",
			})
		}
	}
	if len(missing) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": missing})
		return
	}

	delete(body, "id")
	record := s.stamp(body, true)
	coll.put(record["id"].(string), record)
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	record, ok := coll.records[id]
	if !ok || isDeleted(record) {
		writeDetail(w, http.StatusNotFound, "Record not found")
		return
	}
	for _, key := range sortedKeys(body) {
		switch key {
		case "id", "created_at", "updated_at", "deleted_at":
			continue
		}
		record[key] = body[key]
	}
	s.stamp(record, false)
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	record, ok := coll.records[id]
	if !ok || isDeleted(record) {
		writeDetail(w, http.StatusNotFound, "Record not found")
		return
	}
	s.stamp(record, false)
	record["deleted_at"] = record["updated_at"]
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted successfully"})
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookup(w, r)
	if !ok {
		return
	}
	record, ok := coll.records[chi.URLParam(r, "id")]
	if !ok || !isDeleted(record) {
		writeDetail(w, http.StatusNotFound, "Deleted record not found")
		return
	}
	record["deleted_at"] = nil
	s.stamp(record, false)
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleForceDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if _, ok := coll.records[id]; !ok {
		writeDetail(w, http.StatusNotFound, "Record not found")
		return
	}
	coll.remove(id)
	w.WriteHeader(http.StatusNoContent)
}
