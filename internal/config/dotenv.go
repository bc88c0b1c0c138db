package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv tries to load env vars from .env.local and .env in the current
// directory and every parent up to the filesystem root, so running from a
// repo subdirectory still finds the repo-level file. It only sets vars that
// are not already set, matching godotenv's behavior. ARTIE_DOTENV=0 disables
// loading entirely.
func LoadDotEnv(logPrefix string) {
	if IsDotEnvDisabled() {
		return
	}

	var paths []string
	if cwd, err := os.Getwd(); err == nil && cwd != "" {
		for d := cwd; ; {
			paths = append(paths, filepath.Join(d, ".env.local"), filepath.Join(d, ".env"))
			parent := filepath.Dir(d)
			if parent == d {
				break
			}
			d = parent
		}
	}
	if exe, err := os.Executable(); err == nil && exe != "" {
		paths = append(paths, filepath.Join(filepath.Dir(exe), ".env.local"), filepath.Join(filepath.Dir(exe), ".env"))
	}

	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Fatalf("%s failed to load %s: %v", logPrefix, p, err)
		} else {
			log.Printf("%s loaded env from %s", logPrefix, p)
		}
	}
}

func IsDotEnvDisabled() bool {
	v := strings.TrimSpace(os.Getenv("ARTIE_DOTENV"))
	if v == "" {
		return false
	}
	switch strings.ToLower(v) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}
