// Command tokengen issues bearer tokens for the messaging gateway and admins.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/GlebRadaev/orderdesk/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Can't read .env")
	}

	var (
		userID int64
		role   string
		ttl    time.Duration
		secret string
	)
	flag.Int64Var(&userID, "user", 0, "user id carried by the token")
	flag.StringVar(&role, "role", auth.RoleGateway, "gateway or admin")
	flag.DurationVar(&ttl, "ttl", 365*24*time.Hour, "token lifetime")
	flag.StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "signing secret, JWT_SECRET by default")
	flag.Parse()

	if userID <= 0 || secret == "" {
		flag.Usage()
		os.Exit(2)
	}
	if role != auth.RoleGateway && role != auth.RoleAdmin {
		log.Fatal().Str("role", role).Msg("Unknown role")
	}

	token, err := auth.NewJWTService(secret).GenerateJWT(userID, role, time.Now().Add(ttl))
	if err != nil {
		log.Fatal().Err(err).Msg("Can't sign token")
	}
	fmt.Println(token)
}
