package config

// DBConfig contains PostgreSQL database configuration for the renewal ledger.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"siteops"`
	Password string `env:"PASSWORD"                envDefault:"siteops"`
	Name     string `env:"NAME"                    envDefault:"siteops"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the visitor counter and the
// renewal lock.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`

	// CounterKey is the key holding the visitor count.
	CounterKey string `env:"COUNTER_KEY" envDefault:"siteops:visitor_count"`
}
