package store

import (
	"context"
	"database/sql"
	"fmt"

	"foundling/internal/model"
)

// CreateItem creates a new item owned by userID. An empty photo is stored
// as NULL.
func CreateItem(ctx context.Context, db *sql.DB, userID int64, name, description, photo, status string) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (user_id, name, description, photo, status) VALUES (?, ?, ?, ?, ?)`,
		userID, name, description, nullable(photo), status,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if no such item exists.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var photo sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, name, description, photo, status, created_at, updated_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &photo, &item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Photo = photo.String
	return item, nil
}

// GetItemOwned returns an item by ID only if it is owned by userID, or nil
// otherwise. Used to scope edits and reads to the acting user.
func GetItemOwned(ctx context.Context, db *sql.DB, id, userID int64) (*model.Item, error) {
	item := &model.Item{}
	var photo sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, name, description, photo, status, created_at, updated_at
		 FROM items WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &photo, &item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting owned item: %w", err)
	}
	item.Photo = photo.String
	return item, nil
}

// ListItemsByOwner returns all items owned by userID in insertion order.
func ListItemsByOwner(ctx context.Context, db *sql.DB, userID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, name, description, photo, status, created_at, updated_at
		 FROM items WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem updates an item's fields. Ownership must be checked by the
// caller before updating.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, name, description, photo, status string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, photo = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, description, nullable(photo), status, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItemOwned deletes an item only if it is owned by userID. Deleting a
// missing or foreign item is a silent no-op, matching the delete form's
// fire-and-forget semantics.
func DeleteItemOwned(ctx context.Context, db *sql.DB, id, userID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SearchItems returns all items whose name or description contains keyword,
// across all users. SQLite LIKE matches ASCII case-insensitively.
func SearchItems(ctx context.Context, db *sql.DB, keyword string) ([]model.Item, error) {
	pattern := "%" + keyword + "%"
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, name, description, photo, status, created_at, updated_at
		 FROM items WHERE name LIKE ? OR description LIKE ? ORDER BY id`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		var photo sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &photo, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Photo = photo.String
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
