// internal/config/config.go
//
// Runtime configuration for the server and the CLI.
// Values come from (highest first) environment, an optional YAML file and
// the env-default tags below. A .env file in the working directory is
// loaded into the environment first.

package config

import "time"

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Words    WordsConfig    `yaml:"words"`
	Daily    DailyConfig    `yaml:"daily"`
	Seed     SeedConfig     `yaml:"seed"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port           int           `yaml:"port"            env:"PORT"            env-default:"5175"`
	ClientOrigin   string        `yaml:"client_origin"   env:"CLIENT_ORIGIN"   env-default:"http://localhost:5173"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig selects the SQLite file and the puzzle store backend.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"./data/ringram.db"`
	// PuzzleStore is "sqlite" or "memory". Users and daily results always
	// live in SQLite.
	PuzzleStore string `yaml:"puzzle_store" env:"PUZZLE_STORE" env-default:"sqlite"`
}

// AuthConfig holds JWT cookie settings.
type AuthConfig struct {
	JWTSecret      string `yaml:"jwt_secret"       env:"JWT_SECRET"       env-default:"dev_secret_change_me"`
	JWTExpiresDays int    `yaml:"jwt_expires_days" env:"JWT_EXPIRES_DAYS" env-default:"14"`
	CookieName     string `yaml:"cookie_name"      env:"COOKIE_NAME"      env-default:"ringram_token"`
	Env            string `yaml:"env"              env:"NODE_ENV"         env-default:"development"`
}

// Production reports whether cookies must be Secure/SameSite=None.
func (a AuthConfig) Production() bool { return a.Env == "production" }

// WordsConfig points at optional dictionary files. Empty means the
// embedded list for that side.
type WordsConfig struct {
	File3 string `yaml:"file_3" env:"WORDS_FILE_3"`
	File4 string `yaml:"file_4" env:"WORDS_FILE_4"`
}

// Files maps side to configured path.
func (w WordsConfig) Files() map[int]string {
	return map[int]string{3: w.File3, 4: w.File4}
}

// DailyConfig controls the daily puzzle.
type DailyConfig struct {
	Salt      string `yaml:"salt"   env:"DAILY_SALT"   env-default:"local_dev_salt"`
	Side      int    `yaml:"side"   env:"DAILY_SIDE"   env-default:"4"`
	// RevealRaw lists the revealed cells ("0" reveals none). Empty means the
	// first and last cell of the side.
	RevealRaw string `yaml:"reveal" env:"DAILY_REVEAL"`
	// Reveal is parsed from RevealRaw by Validate.
	Reveal []int `yaml:"-"`
}

// SeedConfig controls catalogue seeding at server start. The server fills
// an empty store with the best Count puzzles of each side.
type SeedConfig struct {
	Count   int `yaml:"count"   env:"SEED_PUZZLES" env-default:"50"`
	Workers int `yaml:"workers" env:"SEED_WORKERS" env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
