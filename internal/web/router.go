package web

import (
	"database/sql"
	"net/http"

	webembed "foundling/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, authSecret, uploadDir string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:         db,
		Templates:  templates,
		AuthSecret: authSecret,
		UploadDir:  uploadDir,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(authSecret, db)

	// Static assets and stored photos.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.IndexPage)
	mux.HandleFunc("POST /{$}", s.IndexSubmit)
	mux.HandleFunc("GET /logout", s.Logout)
	mux.HandleFunc("GET /search", s.SearchPage)

	// Owner-scoped routes.
	mux.Handle("GET /report_lost", cookieAuth(http.HandlerFunc(s.ReportLostPage)))
	mux.Handle("POST /report_lost", cookieAuth(http.HandlerFunc(s.ReportLostSubmit)))
	mux.Handle("GET /report_found", cookieAuth(http.HandlerFunc(s.ReportFoundPage)))
	mux.Handle("POST /report_found", cookieAuth(http.HandlerFunc(s.ReportFoundSubmit)))
	mux.Handle("GET /my_items", cookieAuth(http.HandlerFunc(s.MyItemsPage)))
	mux.Handle("POST /my_items", cookieAuth(http.HandlerFunc(s.MyItemsSubmit)))
	mux.Handle("POST /delete_item_inline/{item_id}", cookieAuth(http.HandlerFunc(s.DeleteItemInline)))

	return mux, nil
}
