package web

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"foundling/internal/db"
	"foundling/internal/store"
)

const testSecret = "test-secret"

func setupWebServer(t *testing.T) (*httptest.Server, *http.Client, *sql.DB, string) {
	t.Helper()

	database := db.NewTestDB(t)
	uploadDir := t.TempDir()

	router, err := NewRouter(database, testSecret, uploadDir)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	return server, client, database, uploadDir
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func registerAndLogin(t *testing.T, client *http.Client, serverURL, username string) {
	t.Helper()

	resp := postForm(t, client, serverURL+"/", url.Values{
		"action":   {"register"},
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"pw"},
	})
	resp.Body.Close()

	resp = postForm(t, client, serverURL+"/", url.Values{
		"action":   {"login"},
		"username": {username},
		"password": {"pw"},
	})
	resp.Body.Close()
}

func reportItem(t *testing.T, client *http.Client, serverURL, path, name, description, photoName, photoContent string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("item_name", name)
	mw.WriteField("description", description)
	if photoName != "" {
		fw, _ := mw.CreateFormFile("photo", photoName)
		fw.Write([]byte(photoContent))
	}
	mw.Close()

	req, _ := http.NewRequest("POST", serverURL+path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func TestRequireSessionRedirects(t *testing.T) {
	server, client, _, _ := setupWebServer(t)

	resp, err := client.Get(server.URL + "/my_items")
	if err != nil {
		t.Fatalf("GET /my_items: %v", err)
	}
	defer resp.Body.Close()

	if resp.Request.URL.Path != "/" {
		t.Errorf("expected redirect to /, landed on %s", resp.Request.URL.Path)
	}
}

func TestRegisterLoginAndVisit(t *testing.T) {
	server, client, _, _ := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "alice")

	resp, err := client.Get(server.URL + "/report_lost")
	if err != nil {
		t.Fatalf("GET /report_lost: %v", err)
	}
	defer resp.Body.Close()

	if resp.Request.URL.Path != "/report_lost" {
		t.Errorf("expected to reach /report_lost with session, landed on %s", resp.Request.URL.Path)
	}
}

func TestLoginOverwritesPriorSession(t *testing.T) {
	server, client, _, _ := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "alice")
	// A second login replaces the cookie rather than erroring.
	resp := postForm(t, client, server.URL+"/", url.Values{
		"action":   {"login"},
		"username": {"alice"},
		"password": {"pw"},
	})
	resp.Body.Close()

	resp, err := client.Get(server.URL + "/my_items")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Request.URL.Path != "/my_items" {
		t.Errorf("expected session after re-login, landed on %s", resp.Request.URL.Path)
	}
}

func TestReportLostWithTraversalPhoto(t *testing.T) {
	server, client, database, uploadDir := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "alice")

	resp := reportItem(t, client, server.URL, "/report_lost", "Wallet", "black leather", "../../etc/passwd", "root:x:0")
	defer resp.Body.Close()

	if resp.Request.URL.Path != "/my_items" {
		t.Fatalf("expected redirect to /my_items, landed on %s", resp.Request.URL.Path)
	}

	user, _ := store.GetUserByUsername(context.Background(), database, "alice")
	items, _ := store.ListItemsByOwner(context.Background(), database, user.ID)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Status != "lost" {
		t.Errorf("expected status 'lost', got %q", items[0].Status)
	}
	if strings.ContainsAny(items[0].Photo, `/\`) {
		t.Errorf("photo reference %q contains a path separator", items[0].Photo)
	}

	// The file landed inside the upload dir under the sanitized name.
	entries, _ := os.ReadDir(uploadDir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored file, got %d", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), "etc_passwd") {
		t.Errorf("expected sanitized basename, got %q", entries[0].Name())
	}
}

func TestReportFoundWithoutPhoto(t *testing.T) {
	server, client, database, _ := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "bob")

	resp := reportItem(t, client, server.URL, "/report_found", "Umbrella", "red, slightly bent", "", "")
	resp.Body.Close()

	user, _ := store.GetUserByUsername(context.Background(), database, "bob")
	items, _ := store.ListItemsByOwner(context.Background(), database, user.ID)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Photo != "" {
		t.Errorf("expected no photo, got %q", items[0].Photo)
	}
	if items[0].Status != "found" {
		t.Errorf("expected status 'found', got %q", items[0].Status)
	}
}

func TestReportValidationRedirectsBack(t *testing.T) {
	server, client, database, _ := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "alice")

	resp := reportItem(t, client, server.URL, "/report_lost", "", "missing name", "", "")
	defer resp.Body.Close()

	if resp.Request.URL.Path != "/report_lost" {
		t.Errorf("expected redirect back to form, landed on %s", resp.Request.URL.Path)
	}

	user, _ := store.GetUserByUsername(context.Background(), database, "alice")
	items, _ := store.ListItemsByOwner(context.Background(), database, user.ID)
	if len(items) != 0 {
		t.Errorf("expected no items persisted, got %d", len(items))
	}
}

func TestSearchPage(t *testing.T) {
	server, client, _, _ := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "alice")
	resp := reportItem(t, client, server.URL, "/report_lost", "Wallet", "black leather", "", "")
	resp.Body.Close()

	// Search is public: use a fresh client with no session.
	resp, err := http.Get(server.URL + "/search?query=wallet")
	if err != nil {
		t.Fatalf("GET /search: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Wallet") {
		t.Error("expected search results to contain the item")
	}

	resp, _ = http.Get(server.URL + "/search")
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(body), "Wallet") {
		t.Error("expected empty query to return no results")
	}
}

func TestDeleteItemInline(t *testing.T) {
	server, client, database, _ := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "alice")
	resp := reportItem(t, client, server.URL, "/report_lost", "Keys", "car keys", "", "")
	resp.Body.Close()

	user, _ := store.GetUserByUsername(context.Background(), database, "alice")
	items, _ := store.ListItemsByOwner(context.Background(), database, user.ID)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	resp = postForm(t, client, server.URL+"/delete_item_inline/"+strconv.FormatInt(items[0].ID, 10), url.Values{})
	resp.Body.Close()

	items, _ = store.ListItemsByOwner(context.Background(), database, user.ID)
	if len(items) != 0 {
		t.Errorf("expected 0 items after delete, got %d", len(items))
	}
}

func TestLogoutEndsSession(t *testing.T) {
	server, client, _, _ := setupWebServer(t)
	registerAndLogin(t, client, server.URL, "alice")

	resp, _ := client.Get(server.URL + "/logout")
	resp.Body.Close()

	resp, err := client.Get(server.URL + "/my_items")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Request.URL.Path != "/" {
		t.Errorf("expected redirect to / after logout, landed on %s", resp.Request.URL.Path)
	}
}
