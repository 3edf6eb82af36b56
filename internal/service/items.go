package service

import (
	"context"
	"database/sql"

	"foundling/internal/apperror"
	"foundling/internal/model"
	"foundling/internal/store"
)

// validateItemFields checks the shared item field rules.
func validateItemFields(name, description, status string) error {
	switch {
	case name == "":
		return apperror.Validation("item_name", "item name is required")
	case description == "":
		return apperror.Validation("description", "description is required")
	case !model.ValidStatus(status):
		return apperror.Validation("status", "status must be lost or found")
	}
	return nil
}

// CreateItem creates an item owned by userID. photo may be empty.
func CreateItem(ctx context.Context, db *sql.DB, userID int64, name, description, photo, status string) (*model.Item, error) {
	if err := validateItemFields(name, description, status); err != nil {
		return nil, err
	}
	return store.CreateItem(ctx, db, userID, name, description, photo, status)
}

// ListItems returns all items owned by userID, oldest first.
func ListItems(ctx context.Context, db *sql.DB, userID int64) ([]model.Item, error) {
	return store.ListItemsByOwner(ctx, db, userID)
}

// UpdateItem edits an item owned by userID. A cross-user edit fails with
// ErrNotFound, indistinguishable from a missing item. An empty photo keeps
// the existing reference; a replaced photo's old file stays on disk.
func UpdateItem(ctx context.Context, db *sql.DB, userID, itemID int64, name, description, photo, status string) error {
	if err := validateItemFields(name, description, status); err != nil {
		return err
	}

	item, err := store.GetItemOwned(ctx, db, itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NotFound("item", itemID)
	}

	if photo == "" {
		photo = item.Photo
	}

	return store.UpdateItem(ctx, db, itemID, name, description, photo, status)
}

// DeleteItem deletes an item owned by userID. Deleting a missing or foreign
// item succeeds silently.
func DeleteItem(ctx context.Context, db *sql.DB, userID, itemID int64) error {
	return store.DeleteItemOwned(ctx, db, itemID, userID)
}

// SearchItems returns all items, regardless of owner, whose name or
// description contains keyword. An empty keyword returns no results rather
// than everything.
func SearchItems(ctx context.Context, db *sql.DB, keyword string) ([]model.Item, error) {
	if keyword == "" {
		return nil, nil
	}
	return store.SearchItems(ctx, db, keyword)
}
