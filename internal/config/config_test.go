package config

import (
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_PASSWORD", "test_password")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("RELATION_BACKEND", "redis")
	t.Setenv("TOP_FILMS_DEFAULT", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.StoreBackend != BackendPostgres {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendPostgres)
	}
	if cfg.RelationBackend != BackendRedis {
		t.Errorf("RelationBackend = %q, want %q", cfg.RelationBackend, BackendRedis)
	}
	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}
	if cfg.TopFilmsDefault != 5 {
		t.Errorf("TopFilmsDefault = %d, want 5", cfg.TopFilmsDefault)
	}
}

func TestLoadConfig_RelationBackendFollowsStore(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("RELATION_BACKEND", "")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.RelationBackend != BackendMemory {
		t.Errorf("RelationBackend = %q, want %q", cfg.RelationBackend, BackendMemory)
	}
}

func TestLoadConfig_InvalidTopDefaultFallsBack(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("RELATION_BACKEND", "")
	t.Setenv("TOP_FILMS_DEFAULT", "ten")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TopFilmsDefault != 10 {
		t.Errorf("TopFilmsDefault = %d, want 10", cfg.TopFilmsDefault)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "Postgres with password",
			cfg:     &Config{StoreBackend: BackendPostgres, RelationBackend: BackendPostgres, DBPassword: "pw", TopFilmsDefault: 10},
			wantErr: false,
		},
		{
			name:    "Postgres with redis relations",
			cfg:     &Config{StoreBackend: BackendPostgres, RelationBackend: BackendRedis, DBPassword: "pw", TopFilmsDefault: 10},
			wantErr: false,
		},
		{
			name:    "Memory only",
			cfg:     &Config{StoreBackend: BackendMemory, RelationBackend: BackendMemory, TopFilmsDefault: 10},
			wantErr: false,
		},
		{
			name:    "Missing DB_PASSWORD",
			cfg:     &Config{StoreBackend: BackendPostgres, RelationBackend: BackendPostgres, TopFilmsDefault: 10},
			wantErr: true,
		},
		{
			name:    "Unknown store backend",
			cfg:     &Config{StoreBackend: "mysql", RelationBackend: BackendMemory, TopFilmsDefault: 10},
			wantErr: true,
		},
		{
			name:    "Redis store backend",
			cfg:     &Config{StoreBackend: BackendRedis, RelationBackend: BackendRedis, TopFilmsDefault: 10},
			wantErr: true,
		},
		{
			name:    "Memory entities with redis relations",
			cfg:     &Config{StoreBackend: BackendMemory, RelationBackend: BackendRedis, TopFilmsDefault: 10},
			wantErr: true,
		},
		{
			name:    "Postgres entities with memory relations",
			cfg:     &Config{StoreBackend: BackendPostgres, RelationBackend: BackendMemory, DBPassword: "pw", TopFilmsDefault: 10},
			wantErr: true,
		},
		{
			name:    "Zero top default",
			cfg:     &Config{StoreBackend: BackendMemory, RelationBackend: BackendMemory},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:          "production",
				StoreBackend:    BackendPostgres,
				RelationBackend: BackendRedis,
				DBSSLMode:       "require",
				RedisPassword:   "secret",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:       "development",
				StoreBackend: BackendMemory,
				DBSSLMode:    "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:          "production",
				StoreBackend:    BackendPostgres,
				RelationBackend: BackendPostgres,
				DBSSLMode:       "disable",
			},
			shouldErr: true,
		},
		{
			name: "Production redis without password",
			cfg: &Config{
				AppEnv:          "production",
				StoreBackend:    BackendPostgres,
				RelationBackend: BackendRedis,
				DBSSLMode:       "require",
			},
			shouldErr: true,
		},
		{
			name: "Production in memory",
			cfg: &Config{
				AppEnv:          "production",
				StoreBackend:    BackendMemory,
				RelationBackend: BackendMemory,
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "cache", RedisPort: "6380"}

	if got := cfg.GetRedisAddr(); got != "cache:6380" {
		t.Errorf("GetRedisAddr() = %q, want %q", got, "cache:6380")
	}
}
