package repository

import (
	"context"
	"testing"

	"github.com/aaryandewangan/japlearn-sub001/internal/models"
)

func TestClaimCertificateIdempotent(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	claim, err := ClaimCertificate(ctx, 1, models.CategoryHiragana)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if claim.Code == "" {
		t.Fatal("claim has no verification code")
	}

	again, err := ClaimCertificate(ctx, 1, models.CategoryHiragana)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if again.Code != claim.Code {
		t.Errorf("second claim code %q, want original %q", again.Code, claim.Code)
	}

	count, err := CountCertificates(ctx, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("certificate count = %d, want 1", count)
	}
}

func TestGetCertificateByCode(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	claim, err := ClaimCertificate(ctx, 1, models.CategoryKanji)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}

	found, err := GetCertificateByCode(ctx, claim.Code)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found.UserID != 1 || found.Category != models.CategoryKanji {
		t.Errorf("lookup returned user %d category %s", found.UserID, found.Category)
	}

	if _, err := GetCertificateByCode(ctx, "no-such-code"); err == nil {
		t.Error("unknown code must not resolve")
	}
}

func TestClaimCertificateSeparateCategories(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	for _, category := range models.Categories() {
		if _, err := ClaimCertificate(ctx, 1, category); err != nil {
			t.Fatalf("claim %s: %v", category, err)
		}
	}

	count, err := CountCertificates(ctx, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("certificate count = %d, want 3", count)
	}
}
