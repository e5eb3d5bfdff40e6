package main

import (
	"fmt"
	"os"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/auth"
	"fitura/backend/internal/commands"
	"fitura/backend/internal/pkg/config"
	"fitura/backend/internal/pkg/repository/postgresql"
	"fitura/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := run(); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			logrus.WithError(err).Fatal("startup")
		}
	}
}

func run() error {
	// .env is optional, config.yaml is not
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	var flags struct {
		Web struct {
			Port       string `conf:"default::8080"`
			StaticPath string `conf:"default:./media"`
		}
	}

	if err := conf.Parse(os.Args[1:], "FITURA", &flags); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage("FITURA", &flags)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	postgresDB := postgresql.NewDatabase(postgresql.Config{
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
	})
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisDB.Close()

	authenticator := auth.New(cfg.JWTKey)

	app := web.NewApp()

	logrus.WithField("port", flags.Web.Port).Info("api started")

	r := router.NewRouter(
		app,
		postgresDB,
		redisDB,
		flags.Web.Port,
		authenticator,
		cfg.JWTKey,
		flags.Web.StaticPath,
	)

	return r.Init()
}
