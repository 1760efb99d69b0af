package main

import (
	accountshandler "venuedesk/internal/accounts/handler"
	accountsrepository "venuedesk/internal/accounts/repository"
	accountsservice "venuedesk/internal/accounts/service"
	accountsvalidator "venuedesk/internal/accounts/validator"
	bookingshandler "venuedesk/internal/bookings/handler"
	bookingsrepository "venuedesk/internal/bookings/repository"
	bookingsservice "venuedesk/internal/bookings/service"
	bookingsvalidator "venuedesk/internal/bookings/validator"
	propertieshandler "venuedesk/internal/properties/handler"
	propertiesrepository "venuedesk/internal/properties/repository"
	propertiesservice "venuedesk/internal/properties/service"
	propertiesvalidator "venuedesk/internal/properties/validator"
	"venuedesk/pkg/app"
	"venuedesk/pkg/auth"
	"venuedesk/pkg/config"
	"venuedesk/pkg/contracts"
	"venuedesk/pkg/kafka"
	"venuedesk/pkg/middleware"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.RedisAddr != "" {
		cfg.SetRedis()
	}

	cfg.Log.Info("Starting API service")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []contracts.Handler {
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := middleware.NewAuthenticator(issuer, cfg.Log)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName)

	propertyRepo := propertiesrepository.NewMongoPropertyRepository(cfg)
	propertyService := propertiesservice.NewPropertyService(
		propertyRepo,
		propertiesvalidator.NewPropertyValidator(cfg.Log),
		cfg,
	)

	bookingService := bookingsservice.NewBookingService(
		bookingsrepository.NewMongoBookingRepository(cfg),
		bookingsrepository.NewSlotLockRepository(cfg),
		propertyRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		producer,
		cfg,
	)

	accountService := accountsservice.NewAccountService(
		accountsrepository.NewMongoAccountRepository(cfg),
		accountsvalidator.NewAccountValidator(cfg.Log),
		issuer,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookingshandler.NewBookingHandler(bookingService, authenticator, cfg.Log),
		propertieshandler.NewPropertyHandler(propertyService, authenticator, cfg.Log),
		accountshandler.NewAccountHandler(accountService, authenticator, cfg.Log),
	}
}
