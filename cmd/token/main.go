// Command token issues an operator bearer token for the roster API.
//
//	JWT_SECRET=... go run ./cmd/token -subject ops@club.dk -role admin
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"club-roster/internal/domain/auth"
	"club-roster/internal/pkg/config"
	"club-roster/internal/pkg/errs"
	"club-roster/internal/pkg/jwt"

	"github.com/kelseyhightower/envconfig"
)

func main() {
	subject := flag.String("subject", "", "operator identity written to the sub claim (random when empty)")
	roleName := flag.String("role", auth.RoleViewer.String(), "viewer or admin")
	ttl := flag.Duration("ttl", 0, "token lifetime, overrides JWT_DURATION")
	flag.Parse()

	if err := run(*subject, *roleName, *ttl); err != nil {
		slog.Error("Failed to issue token", "error", err)
		os.Exit(1)
	}
}

func run(subject, roleName string, ttl time.Duration) error {
	var cfg config.JWTConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return errs.Wrap(err, "failed to process env config")
	}
	role, err := auth.NewRole(roleName)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		if ttl, err = cfg.TokenDuration(); err != nil {
			return errs.Wrap(err, "invalid JWT_DURATION")
		}
	}

	token, err := jwt.NewService(cfg.Secret, ttl).GenerateToken(subject, role)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
