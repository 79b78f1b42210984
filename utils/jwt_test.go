package utils

import (
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("ana@example.com", "u1", "Ana", "Lopez", SigninTokenTTL)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Email != "ana@example.com" || claims.UserID != "u1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.FirstName != "Ana" || claims.LastName != "Lopez" {
		t.Fatalf("name claims mismatch: %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("ana@example.com", "u1", "Ana", "Lopez", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	claims := Claims{
		Email:  "ana@example.com",
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(foreign); err == nil {
		t.Fatal("expected foreign signature to fail validation")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !CheckPassword(hash, "super-secret") {
		t.Fatal("check failed for correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected failure for wrong password")
	}
}
