package config // package config loads application configuration from environment variables

import (
    "errors"
    "fmt"
    "os"
    "strings"

    "github.com/joho/godotenv"
)

// Store drivers understood by Load.
const (
    DriverMongo  = "mongo"
    DriverMySQL  = "mysql"
    DriverSQLite = "sqlite"
    DriverMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Only the fields of the selected StoreDriver are
// required; the others may stay empty.
type Config struct {
    Env         string // application environment (e.g. "dev", "prod")
    Port        string // HTTP port to listen on
    LogLevel    string // debug | info | warn | error (optional)
    StoreDriver string // mongo | mysql | sqlite | memory

    MongoURI string // MongoDB connection string
    MongoDB  string // MongoDB database name

    DBUser string // MySQL username
    DBPass string // MySQL password (optional)
    DBHost string // MySQL host address
    DBPort string // MySQL port number
    DBName string // MySQL database name

    SQLitePath string // SQLite file path
    SeedFile   string // YAML fixture loaded at startup by the memory driver (optional)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set.  Missing
// files are ignored so production deployments need no .env at all.
func LoadDotEnv(files ...string) error {
    if len(files) == 0 {
        files = []string{".env"}
    }
    for _, f := range files {
        if _, err := os.Stat(f); err != nil {
            continue
        }
        if err := godotenv.Load(f); err != nil {
            return fmt.Errorf("load %s: %w", f, err)
        }
    }
    return nil
}

// Load reads configuration values from environment variables and returns a
// Config.  Every required variable that is missing is reported in the
// returned error.
func Load() (Config, error) {
    cfg := Config{
        Env:         envStr("APP_ENV", "dev"),
        Port:        envStr("APP_PORT", "8080"),
        LogLevel:    os.Getenv("LOG_LEVEL"),
        StoreDriver: strings.ToLower(envStr("STORE_DRIVER", DriverMongo)),
        MongoURI:    os.Getenv("MONGO_URI"),
        MongoDB:     envStr("MONGO_DB", "course_reviews"),
        DBUser:      os.Getenv("DB_USER"),
        DBPass:      os.Getenv("DB_PASS"),
        DBHost:      os.Getenv("DB_HOST"),
        DBPort:      envStr("DB_PORT", "3306"),
        DBName:      os.Getenv("DB_NAME"),
        SQLitePath:  envStr("SQLITE_PATH", "course_reviews.db"),
        SeedFile:    os.Getenv("SEED_FILE"),
    }

    var missing []string
    require := func(key, val string) {
        if val == "" {
            missing = append(missing, key)
        }
    }
    switch cfg.StoreDriver {
    case DriverMongo:
        require("MONGO_URI", cfg.MongoURI)
    case DriverMySQL:
        require("DB_USER", cfg.DBUser)
        require("DB_HOST", cfg.DBHost)
        require("DB_NAME", cfg.DBName)
    case DriverSQLite, DriverMemory:
    default:
        return cfg, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
    }
    if len(missing) > 0 {
        return cfg, errors.New("missing required env var(s): " + strings.Join(missing, ", "))
    }
    return cfg, nil
}
