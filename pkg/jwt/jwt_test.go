package jwt

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, 1001, "staff", "access", time.Hour)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	claims, err := ParseToken(secret, "access", token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserID != 1001 || claims.Role != "staff" {
		t.Errorf("claims 不匹配: %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-a"), 1, "staff", "access", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken([]byte("secret-b"), "access", token); err == nil {
		t.Error("错误密钥应解析失败")
	}
}

func TestParseTokenWrongType(t *testing.T) {
	token, err := GenerateToken([]byte("secret"), 1, "staff", "refresh", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken([]byte("secret"), "access", token); err == nil {
		t.Error("令牌类型不符应解析失败")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken([]byte("secret"), 1, "staff", "access", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken([]byte("secret"), "access", token); err == nil {
		t.Error("过期令牌应解析失败")
	}
}
