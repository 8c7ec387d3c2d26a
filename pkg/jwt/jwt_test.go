package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/EthanNaitwe/SchoolReportMaster/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-at-least-16-chars",
		AccessTokenTTL: accessTTL,
		RefreshTTL:     24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)

	token, err := mgr.GenerateAccessToken("user-001", "admin", "admin")
	if err != nil {
		t.Fatalf("生成 Access Token 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "user-001" {
		t.Errorf("期望 UserID=user-001，实际=%s", claims.UserID)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 TokenType=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("期望 JWT ID (jti) 非空")
	}
}

func TestParseExpiredToken(t *testing.T) {
	mgr := newTestManager(-time.Minute) // 已过期

	token, err := mgr.GenerateAccessToken("user-001", "admin", "admin")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	_, err = mgr.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseTokenWithWrongSecret(t *testing.T) {
	mgr := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-16-chars-min",
		AccessTokenTTL: 15 * time.Minute,
		RefreshTTL:     24 * time.Hour,
	})

	token, err := mgr.GenerateAccessToken("user-001", "admin", "admin")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
