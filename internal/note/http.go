// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/stickynote/internal/platform/request"
	"github.com/taibuivan/stickynote/internal/platform/respond"
	"github.com/taibuivan/stickynote/pkg/pointer"
)

// # Handler Implementation

// Handler implements the HTTP layer for note operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new note [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with note endpoints.
//
// Every route expects an identity bound by [middleware.Authenticate], which
// must wrap this router when it is mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listNotes)
	router.Post("/", handler.createNote)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getNote)
		subRouter.Put("/", handler.updateNote)
		subRouter.Patch("/", handler.updateNote)
		subRouter.Delete("/", handler.deleteNote)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// # Note Endpoints

/*
GET /api/notes.

Response:
  - 200: []Note: The caller's notes, newest first
*/
func (handler *Handler) listNotes(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	notes, err := handler.service.List(request.Context(), *identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, notes)
}

/*
GET /api/notes/{id}.

Response:
  - 200: Note
  - 404: Not found or not owned
*/
func (handler *Handler) getNote(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.Get(request.Context(), *identity, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, note)
}

/*
POST /api/notes.

Request (Body):
  - title: string (required)
  - content: string (optional, defaults to "")

Response:
  - 201: Note: Created object
  - 400: Missing title
*/
func (handler *Handler) createNote(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.Create(request.Context(), *identity, CreateInput{
		Title:   input.Title,
		Content: pointer.Val(input.Content),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, note)
}

/*
PUT /api/notes/{id} (PATCH is accepted as an alias).

Request (Body):
  - title: string (optional)
  - content: string (optional)

Response:
  - 200: Note: Updated object
  - 400: Supplied title is empty
  - 404: Not found or not owned
*/
func (handler *Handler) updateNote(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.Update(request.Context(), *identity, requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, note)
}

/*
DELETE /api/notes/{id}.

Response:
  - 204: Deleted
  - 404: Not found or not owned
*/
func (handler *Handler) deleteNote(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), *identity, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
