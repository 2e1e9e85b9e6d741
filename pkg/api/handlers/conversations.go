// Package handlers holds the HTTP handlers behind the /v1 router. Each
// handler decodes, delegates to the dashboard service and writes the
// response envelope; no business logic lives here.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"fandash/pkg/dashboard"
	"fandash/pkg/utils"
	"fandash/pkg/validation"
)

// RegisterConversations registers the conversation routes to the provided router.
func RegisterConversations(r *mux.Router, svc *dashboard.Service) {
	h := &conversationHandlers{svc: svc}

	// Collection route
	r.HandleFunc("/conversations", h.list).Methods(http.MethodGet)

	// Single resource routes
	r.HandleFunc("/conversations/{id}", h.replaceTags).Methods(http.MethodPatch)
	r.HandleFunc("/conversations/{id}/messages", h.detail).Methods(http.MethodGet)
	r.HandleFunc("/conversations/{id}/messages", h.appendMessage).Methods(http.MethodPost)
}

type conversationHandlers struct {
	svc *dashboard.Service
}

// list handles GET /conversations. Optional query parameters:
//   - "status": "active", "expired" or "all" (default "all")
//   - "search": case-insensitive match against fan name or last message body
//   - "sortBy": "recent" (default), "revenue" or "unread"
func (h *conversationHandlers) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.ListConversations(q.Get("status"), q.Get("search"), q.Get("sortBy"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSONSuccess(w, http.StatusOK, res.Conversations, &utils.Meta{Count: len(res.Conversations), Cached: res.Cached})
}

// detail handles GET /conversations/{id}/messages: the fan summary plus
// the full chronological history.
func (h *conversationHandlers) detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res, err := h.svc.GetConversationDetail(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSONSuccess(w, http.StatusOK, res.Detail, &utils.Meta{Count: len(res.Detail.Messages), Cached: res.Cached})
}

// appendMessage handles POST /conversations/{id}/messages.
func (h *conversationHandlers) appendMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req validation.AppendMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, utils.CodeBadRequest, "invalid json")
		return
	}
	msg, err := h.svc.AppendMessage(id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSONSuccess(w, http.StatusCreated, msg, nil)
}

// replaceTags handles PATCH /conversations/{id}. The body's tags list
// replaces the fan's tags wholesale; an empty list clears them.
func (h *conversationHandlers) replaceTags(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req validation.ReplaceTags
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, utils.CodeBadRequest, "invalid json")
		return
	}
	conv, err := h.svc.ReplaceTags(id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSONSuccess(w, http.StatusOK, conv, nil)
}
