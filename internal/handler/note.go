package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jotter-dev/jotter/internal/api"
	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/middleware"
	"github.com/jotter-dev/jotter/internal/utils"
)

func noteResponse(note domain.Note) api.NoteResponse {
	return api.NoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		Visibility: string(note.Visibility),
		IsDraft:    note.IsDraft,
		AuthorId:   note.AuthorId,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var body api.CreateNoteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	actor := middleware.GetUserFromContext(r)
	note, err := h.note.Create(actor, domain.NoteCreationData{
		Title:      body.Title,
		Content:    body.Content,
		Visibility: domain.Visibility(body.Visibility),
		IsDraft:    body.IsDraft,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAudit(r, domain.AuditCreateNote, domain.TargetNote, targetRef(note.Id), nil)

	writeJSON(w, http.StatusCreated, noteResponse(note))
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "note id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	note, err := h.note.Get(middleware.GetUserFromContext(r), int64(id))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteResponse(note))
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "note id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateNoteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	note, err := h.note.Update(middleware.GetUserFromContext(r), int64(id), domain.NoteUpdate{
		Title:      body.Title,
		Content:    body.Content,
		Visibility: domain.Visibility(body.Visibility),
		IsDraft:    body.IsDraft,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAudit(r, domain.AuditUpdateNote, domain.TargetNote, targetRef(note.Id), nil)

	writeJSON(w, http.StatusOK, noteResponse(note))
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "note id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.note.Delete(middleware.GetUserFromContext(r), int64(id)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAudit(r, domain.AuditDeleteNote, domain.TargetNote, targetRef(int64(id)), nil)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePaging(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	visibility := r.URL.Query().Get("visibility")

	notes, err := h.note.List(middleware.GetUserFromContext(r), visibility, skip, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	responses := make([]api.NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = noteResponse(note)
	}
	writeJSON(w, http.StatusOK, api.NoteListResponse{Notes: responses, Skip: skip, Limit: limit})
}
