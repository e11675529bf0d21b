package main

import (
	"flag"
	"fmt"

	"studio/config"
	"studio/infras/jwt"
	"studio/shared/constant"
	"studio/shared/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Issues a local access token for trying the API without the identity provider.
func main() {
	logger.InitLogger()

	userID := flag.String("user", uuid.NewString(), "user id")
	name := flag.String("name", "Local User", "display name")
	role := flag.String("role", constant.RoleClient, "role: client, subadmin or admin")
	flag.Parse()

	token, err := jwt.New(config.Get()).GenerateToken(*userID, *name, *role)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate token")
	}

	fmt.Println(token) //nolint:forbidigo
}
