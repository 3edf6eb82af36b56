package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"foundling/internal/model"
	"foundling/internal/service"
)

// ItemsHandler handles owner-scoped item endpoints and keyword search.
type ItemsHandler struct {
	DB *sql.DB
}

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// List handles GET /api/items. Only the authenticated user's items are
// returned.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	items, err := service.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. Photos are attached through the web form
// only; API-created items start without one.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := service.CreateItem(r.Context(), h.DB, claims.UserID, req.Name, req.Description, "", req.Status)
	if err != nil {
		writeAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}. Editing another user's item fails as
// not found.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := service.UpdateItem(r.Context(), h.DB, claims.UserID, id, req.Name, req.Description, "", req.Status); err != nil {
		writeAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item updated"})
}

// Delete handles DELETE /api/items/{id}. Deleting a missing or foreign item
// reports success, matching the web form's behavior.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := service.DeleteItem(r.Context(), h.DB, claims.UserID, id); err != nil {
		writeAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Search handles GET /api/search?query=. Results span all users' items; an
// empty query returns an empty list.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	items, err := service.SearchItems(r.Context(), h.DB, query)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}
