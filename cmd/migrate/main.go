package main

import (
	"context"
	"os"
	"strings"

	"floorplan/config"
	"floorplan/di"
	authDto "floorplan/internal/domains/auth/model/dto"
	"floorplan/helper"
	"floorplan/shared/constant"
	"floorplan/shared/logger"
	"floorplan/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	argLength           = 2
	importArgLength     = 3
	createUserArgLength = 5
)

const usage = "usage: migrate up|down|drop|step-up | import-layout <file|url> | create-user <username> <password> <name> [role]"

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	switch os.Args[1] {
	case "up":
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	case "down":
		if err := helper.Down(cfg); err != nil {
			log.Fatal().Err(err).Msg("rollback failed")
		}
	case "drop":
		if err := helper.Drop(cfg); err != nil {
			log.Fatal().Err(err).Msg("drop failed")
		}
	case "step-up":
		if err := helper.StepUp(cfg); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	case "import-layout":
		importLayout()
	case "create-user":
		createUser()
	default:
		log.Fatal().Msg(usage)
	}
}

// importLayout seeds tables from a legacy layout file or a backup URL.
func importLayout() {
	if len(os.Args) < importArgLength {
		log.Fatal().Msg(usage)
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, constant.ContextSystem)
	source := os.Args[2]
	tools := di.InitializeTools()

	importFn := tools.Layout.Import
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		importFn = tools.Layout.ImportBackup
	}

	res, err := importFn(ctx, source)
	if err != nil {
		log.Fatal().Err(err).Str("source", source).Msg("failed to import layout")
	}

	log.Info().Int("imported", res.Imported).Strs("skipped", res.Skipped).Msg("layout imported")
}

func createUser() {
	if len(os.Args) < createUserArgLength {
		log.Fatal().Msg(usage)
	}

	req := authDto.RegisterRequest{
		Username: os.Args[2],
		Password: os.Args[3],
		Name:     os.Args[4],
	}

	if len(os.Args) > createUserArgLength {
		req.Role = os.Args[5]
	}

	if err := validator.ValidateStruct(&req); err != nil {
		log.Fatal().Err(err).Msg("invalid user")
	}

	res, err := di.InitializeTools().Auth.Register(context.Background(), req, constant.ContextSystem)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create user")
	}

	log.Info().Str("id", res.ID).Str("username", res.Username).Str("role", res.Role).Msg("user created")
}
