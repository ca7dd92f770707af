package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chris-regnier/mindary/internal/api"
	"github.com/chris-regnier/mindary/internal/record"
	"github.com/chris-regnier/mindary/internal/storage"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getDiary answers GET /mindary?date=YYYY-MM-DD with the day's chats and
// records. A day with nothing stored yields empty lists.
func (s *Server) getDiary(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("date")
	if err := record.ValidateDay(day); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chats, err := s.store.ListMemos(day)
	if err != nil {
		s.storageError(w, r, "listing memos", err)
		return
	}
	records, err := s.store.ListRecords(day)
	if err != nil {
		s.storageError(w, r, "listing records", err)
		return
	}

	writeJSON(w, http.StatusOK, api.DiaryResponse{Chats: chats, Records: records})
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRecordRequest
	if !s.decode(w, r, &req) {
		return
	}

	rec, err := record.NewRecord(req.Date, record.Category(req.Category), req.Title, req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.CreateRecord(rec); err != nil {
		s.storageError(w, r, "creating record", err)
		return
	}

	s.logger.Info("record created",
		zap.String("id", rec.ID),
		zap.String("date", rec.Date),
		zap.String("category", string(rec.Category)))
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) createMemo(w http.ResponseWriter, r *http.Request) {
	var req api.CreateMemoRequest
	if !s.decode(w, r, &req) {
		return
	}

	m, err := record.NewMemo(req.Date, req.Role, req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.CreateMemo(m); err != nil {
		s.storageError(w, r, "creating memo", err)
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) storageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error(op,
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
