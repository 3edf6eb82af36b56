package store

import (
	"context"
	"testing"
	"time"

	"foundling/internal/db"
)

func TestRevokeAndCheckToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	revoked, err := IsTokenRevoked(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("IsTokenRevoked: %v", err)
	}
	if revoked {
		t.Error("expected unknown JTI to not be revoked")
	}

	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	revoked, _ = IsTokenRevoked(ctx, database, "jti-1")
	if !revoked {
		t.Error("expected JTI to be revoked")
	}

	// Revoking twice is fine.
	if err := RevokeToken(ctx, database, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("repeated RevokeToken: %v", err)
	}
}

func TestExpiredRevocationsPruned(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	RevokeToken(ctx, database, "old", time.Now().Add(-time.Hour))
	// The next revocation prunes expired entries.
	RevokeToken(ctx, database, "new", time.Now().Add(time.Hour))

	revoked, _ := IsTokenRevoked(ctx, database, "old")
	if revoked {
		t.Error("expected expired revocation to be pruned")
	}
}
