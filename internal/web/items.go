package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"foundling/internal/apperror"
	"foundling/internal/model"
	"foundling/internal/service"
	"foundling/internal/upload"
)

// maxUploadBytes caps the size of a multipart report form, photo included.
const maxUploadBytes = 5 << 20

// ReportLostPage handles GET /report_lost.
func (s *Server) ReportLostPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "report_lost.html", &PageData{
		Title: "Report Lost Item",
		User:  GetWebClaims(r.Context()),
		Flash: popFlash(w, r),
	})
}

// ReportLostSubmit handles POST /report_lost.
func (s *Server) ReportLostSubmit(w http.ResponseWriter, r *http.Request) {
	s.reportSubmit(w, r, model.StatusLost, "/report_lost")
}

// ReportFoundPage handles GET /report_found.
func (s *Server) ReportFoundPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "report_found.html", &PageData{
		Title: "Report Found Item",
		User:  GetWebClaims(r.Context()),
		Flash: popFlash(w, r),
	})
}

// ReportFoundSubmit handles POST /report_found.
func (s *Server) ReportFoundSubmit(w http.ResponseWriter, r *http.Request) {
	s.reportSubmit(w, r, model.StatusFound, "/report_found")
}

// reportSubmit creates an item with the given status from the report form.
// Validation failures redirect back to the form; success lands on /my_items.
func (s *Server) reportSubmit(w http.ResponseWriter, r *http.Request, status, backTo string) {
	claims := GetWebClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		setFlash(w, "error", "Upload too large.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	name := r.FormValue("item_name")
	description := r.FormValue("description")

	if name == "" || description == "" {
		setFlash(w, "error", "Name and description are required.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	photo, ok := s.storePhoto(w, r, backTo)
	if !ok {
		return
	}

	if _, err := service.CreateItem(r.Context(), s.DB, claims.UserID, name, description, photo, status); err != nil {
		slog.Error("failed to create item", "error", err)
		setFlash(w, "error", "Could not save the report.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	slog.Info("item reported", "user", claims.Username, "item", name, "status", status)
	setFlash(w, "success", "Item reported successfully!")
	http.Redirect(w, r, "/my_items", http.StatusSeeOther)
}

// storePhoto saves the optional photo field and returns its stored filename.
// Returns ok=false after redirecting if the upload was rejected.
func (s *Server) storePhoto(w http.ResponseWriter, r *http.Request, backTo string) (string, bool) {
	file, header, err := r.FormFile("photo")
	if err == http.ErrMissingFile {
		return "", true
	}
	if err != nil {
		return "", true
	}
	defer file.Close()

	photo, err := upload.Store(s.UploadDir, header.Filename, file)
	if err != nil {
		slog.Warn("rejected photo upload", "error", err)
		setFlash(w, "error", "Could not store the photo.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return "", false
	}
	return photo, true
}

// MyItemsPage handles GET /my_items. Only the session user's items are shown.
func (s *Server) MyItemsPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	items, err := service.ListItems(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "my_items.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "My Items", User: claims, Flash: popFlash(w, r)},
		Items:    items,
	})
}

// MyItemsSubmit handles POST /my_items: an inline edit of one of the session
// user's items, identified by the item_id form field.
func (s *Server) MyItemsSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		setFlash(w, "error", "Upload too large.")
		http.Redirect(w, r, "/my_items", http.StatusSeeOther)
		return
	}

	itemID, err := strconv.ParseInt(r.FormValue("item_id"), 10, 64)
	if err != nil {
		setFlash(w, "error", "Invalid item.")
		http.Redirect(w, r, "/my_items", http.StatusSeeOther)
		return
	}

	name := r.FormValue("item_name")
	description := r.FormValue("description")
	status := r.FormValue("status")

	// An empty photo keeps the existing one; the replaced file stays on disk.
	photo, ok := s.storePhoto(w, r, "/my_items")
	if !ok {
		return
	}

	err = service.UpdateItem(r.Context(), s.DB, claims.UserID, itemID, name, description, photo, status)
	switch {
	case err == nil:
		slog.Info("item updated", "user", claims.Username, "item", name, "status", status)
		setFlash(w, "success", "Item updated successfully!")
	case errors.Is(err, apperror.ErrValidation):
		setFlash(w, "error", "All fields required and status must be lost/found.")
	case errors.Is(err, apperror.ErrNotFound):
		setFlash(w, "error", "Item not found.")
	default:
		slog.Error("failed to update item", "error", err)
		setFlash(w, "error", "Could not update the item.")
	}
	http.Redirect(w, r, "/my_items", http.StatusSeeOther)
}

// DeleteItemInline handles POST /delete_item_inline/{item_id}. Deleting a
// missing or foreign item still reports success.
func (s *Server) DeleteItemInline(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	itemID, err := strconv.ParseInt(r.PathValue("item_id"), 10, 64)
	if err != nil {
		setFlash(w, "error", "Invalid item.")
		http.Redirect(w, r, "/my_items", http.StatusSeeOther)
		return
	}

	if err := service.DeleteItem(r.Context(), s.DB, claims.UserID, itemID); err != nil {
		slog.Error("failed to delete item", "error", err)
		setFlash(w, "error", "Could not delete the item.")
		http.Redirect(w, r, "/my_items", http.StatusSeeOther)
		return
	}

	slog.Info("item deleted", "user", claims.Username, "item_id", itemID)
	setFlash(w, "success", "Item deleted successfully!")
	http.Redirect(w, r, "/my_items", http.StatusSeeOther)
}

// SearchPage handles GET /search. The search is public and spans all users'
// items; an empty query shows no results.
func (s *Server) SearchPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	results, err := service.SearchItems(r.Context(), s.DB, query)
	if err != nil {
		slog.Error("failed to search items", "error", err)
	}

	s.Templates.Render(w, "search.html", &struct {
		PageData
		Query   string
		Results []model.Item
	}{
		PageData: PageData{Title: "Search", User: sessionClaims(r, s.AuthSecret, s.DB), Flash: popFlash(w, r)},
		Query:    query,
		Results:  results,
	})
}
