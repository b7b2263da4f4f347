package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"djigbo-server/internal/config"
	"djigbo-server/internal/domain/chat"
	"djigbo-server/internal/domain/conversation"
	"djigbo-server/internal/domain/feedback"
	"djigbo-server/internal/domain/mood"
	"djigbo-server/internal/domain/summarizer"
	"djigbo-server/internal/domain/user"
	"djigbo-server/internal/infrastructure/auth"
	"djigbo-server/internal/infrastructure/crontab"
	"djigbo-server/internal/infrastructure/database"
	_ "djigbo-server/internal/infrastructure/database/dbschema"
	"djigbo-server/internal/infrastructure/database/repository/feedbackrepo"
	"djigbo-server/internal/infrastructure/database/repository/moodrepo"
	"djigbo-server/internal/infrastructure/database/repository/summaryrepo"
	"djigbo-server/internal/infrastructure/database/repository/userrepo"
	"djigbo-server/internal/infrastructure/inference"
	"djigbo-server/internal/infrastructure/logger"
	"djigbo-server/internal/infrastructure/observability"
	"djigbo-server/internal/interfaces/httpserver"
	"djigbo-server/internal/interfaces/httpserver/handlers/chathandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/conversationhandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/feedbackhandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/moodhandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/userhandler"
)

type Application struct {
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
}

// Start runs the HTTP server and the maintenance jobs until the process is
// told to stop.
func (application *Application) Start(ctx context.Context, log zerolog.Logger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := application.crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.httpServer.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.GetLogger()
		bootLog.Fatal().Err(err).Msg("load configuration")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		bootLog := logger.GetLogger()
		bootLog.Fatal().Err(err).Msg("configure logger")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	validator, err := auth.NewAuth0Validator(
		ctx,
		cfg.ResolveJWKSURL(),
		cfg.Issuer(),
		cfg.Auth0Audience,
		cfg.RefreshJWKSInterval,
		cfg.ClockSkew,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize token validator")
	}

	application, err := buildApplication(ctx, cfg, db, validator, log)
	if err != nil {
		log.Fatal().Err(err).Msg("wire application")
	}

	application.Start(ctx, log)
}

func buildApplication(
	ctx context.Context,
	cfg *config.Config,
	db *gorm.DB,
	validator *auth.Auth0Validator,
	log zerolog.Logger,
) (*Application, error) {
	registry, err := buildProviderRegistry(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	chatProvider, err := chat.ParseProviderKind(cfg.ChatProvider)
	if err != nil {
		return nil, err
	}
	// The default chat provider must have credentials at boot; a misconfigured
	// deployment should fail here, not on the first request.
	if _, err := registry.Get(chatProvider); err != nil {
		return nil, err
	}
	summaryKind, err := chat.ParseProviderKind(cfg.SummaryProvider)
	if err != nil {
		return nil, err
	}

	// The simple summary kind selects the deterministic fallback, so it maps
	// to a summarizer without a model behind it.
	var summaryProvider chat.ModelProvider
	if summaryKind != chat.ProviderSimple {
		summaryProvider, err = registry.Get(summaryKind)
		if err != nil {
			return nil, err
		}
	}

	conversationService := conversation.NewService(summaryrepo.NewSummaryGormRepository(db))
	chatService := chat.NewService(
		registry,
		chat.NewSessionResolver(cfg.SessionSimilarityThreshold),
		summarizer.New(summaryProvider, cfg.SummaryMaxWords),
		conversationService,
	)
	feedbackService := feedback.NewService(feedbackrepo.NewFeedbackGormRepository(db))
	userService := user.NewService(userrepo.NewUserGormRepository(db))
	moodService := mood.NewService(moodrepo.NewMoodGormRepository(db))

	handlers := httpserver.Handlers{
		Chat:         chathandler.NewChatHandler(chatService, chatProvider),
		Conversation: conversationhandler.NewConversationHandler(conversationService),
		Feedback:     feedbackhandler.NewFeedbackHandler(feedbackService),
		User:         userhandler.NewUserHandler(userService),
		Mood:         moodhandler.NewMoodHandler(moodService),
	}

	return &Application{
		httpServer: httpserver.NewHTTPServer(handlers, validator, cfg, log),
		crontab:    crontab.NewCrontab(conversationService, moodService),
	}, nil
}

// buildProviderRegistry configures every model backend the environment has
// credentials for. A missing backend is not an error until a request asks
// for it.
func buildProviderRegistry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*chat.ProviderRegistry, error) {
	providers := []chat.ModelProvider{
		inference.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel),
	}

	if cfg.TogetherAPIKey != "" {
		providers = append(providers, inference.NewTogetherProvider(cfg.TogetherBaseURL, cfg.TogetherAPIKey, cfg.TogetherModel))
	} else {
		log.Warn().Msg("TOGETHER_API_KEY not set, together provider disabled")
	}

	if cfg.BedrockModelID != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}
		providers = append(providers, inference.NewBedrockProvider(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID))
	} else {
		log.Info().Msg("BEDROCK_MODEL_ID not set, bedrock provider disabled")
	}

	return chat.NewProviderRegistry(providers...), nil
}
