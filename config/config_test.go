package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"合法配置", Config{Server: ServerConfig{Port: 8080}, Auth: AuthConfig{JWTSecret: "0123456789abcdef"}}, false},
		{"缺少密钥", Config{Server: ServerConfig{Port: 8080}}, true},
		{"密钥过短", Config{Server: ServerConfig{Port: 8080}, Auth: AuthConfig{JWTSecret: "short"}}, true},
		{"端口越界", Config{Server: ServerConfig{Port: 70000}, Auth: AuthConfig{JWTSecret: "0123456789abcdef"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v，期望 wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
auth:
  jwt_secret: file-secret-0123456789
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("LEARNHUB_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("环境变量应覆盖配置文件，期望 level=warn，实际=%s", cfg.Log.Level)
	}
	if cfg.Auth.AccessTokenTTL != time.Hour {
		t.Errorf("期望默认 AccessTokenTTL=1h，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Certificate.NumberPrefix != "LH" {
		t.Errorf("期望默认证书前缀 LH，实际=%s", cfg.Certificate.NumberPrefix)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("缺少 jwt_secret 时应返回错误")
	}
}

func TestLoad_SecretFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("LEARNHUB_AUTH_JWT_SECRET", "env-secret-0123456789")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret-0123456789" {
		t.Errorf("jwt_secret 应来自环境变量，实际=%s", cfg.Auth.JWTSecret)
	}
}
