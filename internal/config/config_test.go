package config

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"
)

func TestLoadDefaultsToMongo(t *testing.T) {
    t.Setenv("STORE_DRIVER", "")
    t.Setenv("MONGO_URI", "mongodb://localhost:27017")
    t.Setenv("APP_PORT", "")

    cfg, err := Load()
    if err != nil {
        t.Fatalf("Load: %v", err)
    }
    if cfg.StoreDriver != DriverMongo {
        t.Fatalf("StoreDriver: want=%q got=%q", DriverMongo, cfg.StoreDriver)
    }
    if cfg.Port != "8080" {
        t.Fatalf("Port: want=%q got=%q", "8080", cfg.Port)
    }
}

func TestLoadReportsMissingMySQLVars(t *testing.T) {
    t.Setenv("STORE_DRIVER", "mysql")
    t.Setenv("DB_USER", "")
    t.Setenv("DB_HOST", "db")
    t.Setenv("DB_NAME", "")

    _, err := Load()
    if err == nil {
        t.Fatalf("Load: expected error, got nil")
    }
    for _, key := range []string{"DB_USER", "DB_NAME"} {
        if !strings.Contains(err.Error(), key) {
            t.Fatalf("error %q should mention %s", err, key)
        }
    }
    if strings.Contains(err.Error(), "DB_HOST") {
        t.Fatalf("error %q should not mention DB_HOST", err)
    }
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
    t.Setenv("STORE_DRIVER", "firestore")
    if _, err := Load(); err == nil {
        t.Fatalf("Load: expected error for unknown driver")
    }
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
    dir := t.TempDir()
    file := filepath.Join(dir, ".env")
    if err := os.WriteFile(file, []byte("APP_ENV=fromfile\nSQLITE_PATH=/tmp/x.db\n"), 0o600); err != nil {
        t.Fatalf("WriteFile: %v", err)
    }
    t.Setenv("APP_ENV", "fromenv")
    t.Setenv("SQLITE_PATH", "")
    os.Unsetenv("SQLITE_PATH")

    if err := LoadDotEnv(file, filepath.Join(dir, "missing.env")); err != nil {
        t.Fatalf("LoadDotEnv: %v", err)
    }
    if got := os.Getenv("APP_ENV"); got != "fromenv" {
        t.Fatalf("APP_ENV: want=%q got=%q", "fromenv", got)
    }
    if got := os.Getenv("SQLITE_PATH"); got != "/tmp/x.db" {
        t.Fatalf("SQLITE_PATH: want=%q got=%q", "/tmp/x.db", got)
    }
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    if cfg.Capacity != 1 {
        t.Fatalf("Capacity: want=1 got=%d", cfg.Capacity)
    }
    if cfg.TTL != 10*time.Second {
        t.Fatalf("TTL: want=%s got=%s", 10*time.Second, cfg.TTL)
    }
}

func TestLoadCacheConfigMethods(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")
    cfg := LoadCacheConfig()
    if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || len(cfg.Methods) != 2 {
        t.Fatalf("Methods: got=%v", cfg.Methods)
    }
}

func TestLoadRedisConfigHostPort(t *testing.T) {
    t.Setenv("REDIS_HOST", "cache")
    t.Setenv("REDIS_PORT", "6380")
    t.Setenv("REDIS_TLS", "1")
    cfg := LoadRedisConfig()
    if cfg.Addr != "cache:6380" {
        t.Fatalf("Addr: want=%q got=%q", "cache:6380", cfg.Addr)
    }
    if !cfg.TLS {
        t.Fatalf("TLS: want=true")
    }
}
