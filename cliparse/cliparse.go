package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backend names accepted by -store / STORE_BACKEND.
const (
	StoreGitHub = "github"
	StoreSQL    = "sql"
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

type Config struct {
	Port         int
	StoreBackend string

	// sql backend
	DatabaseURL  string
	DatabaseType string

	// bolt backend
	BoltPath string

	// github backend
	GitHubToken string
	GitHubRepo  string
	GitHubPath  string

	RosterURL string
	RosterTTL time.Duration

	AdminPIN       string
	SessionSecret  string
	CommitAttempts int
}

// ParseFlags reads configuration from flags with env fallback.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var rosterTTLSeconds int

	fs := flag.NewFlagSet("pilketos", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "store", "", "Ledger store backend (github, sql, bolt, memory)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sql backend)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BoltPath, "bolt", "", "Ledger database file (bolt backend)")
	fs.StringVar(&cfg.GitHubRepo, "github-repo", "", "owner/name of the ledger repository (github backend)")
	fs.StringVar(&cfg.GitHubPath, "github-path", "", "Ledger file path inside the repository")
	fs.StringVar(&cfg.RosterURL, "roster", "", "Roster CSV URL")
	fs.IntVar(&rosterTTLSeconds, "roster-ttl", 0, "Roster cache TTL in seconds")
	fs.IntVar(&cfg.CommitAttempts, "retries", 0, "Ledger commit attempt budget")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPIN, "pin", "", "Admin PIN (prefer env)")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")
	fs.StringVar(&cfg.GitHubToken, "github-token", "", "GitHub access token (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8035 // default
		}
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("STORE_BACKEND")
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = StoreBolt
	}

	switch cfg.StoreBackend {
	case StoreGitHub:
		if cfg.GitHubToken == "" {
			cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
		}
		if cfg.GitHubToken == "" {
			return Config{}, errors.New("GITHUB_TOKEN required for the github backend")
		}
		if cfg.GitHubRepo == "" {
			cfg.GitHubRepo = os.Getenv("GITHUB_REPO")
		}
		if cfg.GitHubRepo == "" {
			return Config{}, errors.New("GITHUB_REPO required for the github backend (owner/name)")
		}
		if cfg.GitHubPath == "" {
			cfg.GitHubPath = os.Getenv("GITHUB_PATH")
		}
		if cfg.GitHubPath == "" {
			cfg.GitHubPath = "database_pilketos.json"
		}
	case StoreSQL:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		}
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
		if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
			return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
		}
	case StoreBolt:
		if cfg.BoltPath == "" {
			cfg.BoltPath = os.Getenv("BOLT_PATH")
		}
		if cfg.BoltPath == "" {
			cfg.BoltPath = "pilketos.db"
		}
	case StoreMemory:
		// nothing to configure
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if cfg.RosterURL == "" {
		cfg.RosterURL = os.Getenv("ROSTER_URL")
	}
	if cfg.RosterURL == "" {
		return Config{}, errors.New("roster URL required (use -roster or ROSTER_URL env)")
	}

	if rosterTTLSeconds == 0 {
		if ttlStr := os.Getenv("ROSTER_TTL_SECONDS"); ttlStr != "" {
			ttl, err := strconv.Atoi(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid ROSTER_TTL_SECONDS env variable")
			}
			rosterTTLSeconds = ttl
		} else {
			rosterTTLSeconds = 60
		}
	}
	cfg.RosterTTL = time.Duration(rosterTTLSeconds) * time.Second

	if cfg.CommitAttempts == 0 {
		if attemptsStr := os.Getenv("COMMIT_ATTEMPTS"); attemptsStr != "" {
			attempts, err := strconv.Atoi(attemptsStr)
			if err != nil {
				return Config{}, errors.New("invalid COMMIT_ATTEMPTS env variable")
			}
			cfg.CommitAttempts = attempts
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminPIN == "" {
		cfg.AdminPIN = os.Getenv("ADMIN_PIN")
	}
	if cfg.AdminPIN == "" {
		return Config{}, errors.New("ADMIN_PIN required")
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	return cfg, nil
}
