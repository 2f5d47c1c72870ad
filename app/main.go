package main

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"time"

	"gopress/internal/blogservice"
	"gopress/internal/common"
	"gopress/internal/mailservice"
	"gopress/internal/userservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	templateCache map[string]*template.Template
	userService   *userservice.UserService
	blogService   *blogservice.BlogService
	mailService   *mailservice.MailService
	broker        *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// the session secret signs flash cookies; refusing to start without one
	// beats silently accepting forgeable cookies
	if cfg.SessionSecret == "" {
		logger.Error("SESSION_SECRET must be set")
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBDSN, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to open the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	if err := common.MigrateDB(db, "file://migrations"); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	templateCache, err := newTemplateCache()
	if err != nil {
		logger.Error("failed to build the template cache", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:        cfg,
		logger:        logger,
		templateCache: templateCache,
		userService:   userservice.NewUserService(db, broker),
		blogService:   blogservice.NewBlogService(db, cache),
		mailService:   mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:        broker,
	}

	app.mailService.SendWelcomeEmail()
	defer app.mailService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
