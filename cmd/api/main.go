package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/auth"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/config"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/events"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/handlers"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/mail"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/realtime"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/repository"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error:", err)
	}

	logging.Init("marketplace-api", cfg.LogFile)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}
	logging.Logger.Info("Event ID: DB_CONNECTED, Description: Connected to MongoDB")

	db := client.Database(cfg.MongoDB)

	// Repositories.
	users := repository.New[models.User](db.Collection("users"))
	courses := repository.New[models.Course](db.Collection("courses"))
	offerings := repository.New[models.ServiceOffering](db.Collection("services"))
	bookings := repository.New[models.Booking](db.Collection("bookings"))
	testimonials := repository.New[models.Testimonial](db.Collection("testimonials"))
	offers := repository.New[models.Offer](db.Collection("offers"))
	assignedOffers := repository.New[models.AssignedOffer](db.Collection("assigned_offers"))
	enquiries := repository.New[models.Enquiry](db.Collection("enquiries"))
	conversations := repository.New[models.Conversation](db.Collection("conversations"))
	messages := repository.New[models.Message](db.Collection("messages"))
	onboardingStore := repository.NewOnboardingStore(db.Collection("client_onboarding_projects"))

	// Auth.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	revoker := auth.NewRedisRevoker(rdb)
	authMiddleware := auth.NewMiddleware(jwtManager, revoker)

	// Realtime fan-out: the in-process hub always, the broker when
	// configured.
	hub := realtime.NewHub(cfg.AllowedOrigin)
	publisher := events.Fanout{hub}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatal("RabbitMQ connection failed:", err)
		}
		defer amqpPublisher.Close()
		publisher = append(publisher, amqpPublisher)
	}

	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword)

	// Services and handlers.
	userService := services.NewUserService(users, jwtManager)
	onboardingService := services.NewOnboardingService(onboardingStore, publisher)
	catalogService := services.NewCatalogService(courses, offerings)
	bookingService := services.NewBookingService(bookings, offerings)
	testimonialService := services.NewTestimonialService(testimonials)
	offerService := services.NewOfferService(offers, assignedOffers)
	enquiryService := services.NewEnquiryService(enquiries, mailer, cfg.EnquiryInbox)
	messageService := services.NewMessageService(conversations, messages)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:         authMiddleware,
		Users:        handlers.NewUserHandler(userService, revoker),
		Onboarding:   handlers.NewOnboardingHandler(onboardingService),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Bookings:     handlers.NewBookingHandler(bookingService),
		Testimonials: handlers.NewTestimonialHandler(testimonialService),
		Offers:       handlers.NewOfferHandler(offerService),
		Enquiries:    handlers.NewEnquiryHandler(enquiryService),
		Messages:     handlers.NewMessageHandler(messageService),
		Hub:          hub,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handlers.EnableCORS(cfg.AllowedOrigin, router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START, Description: Marketplace API listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	<-shutdownCtx.Done()

	logging.Logger.Info("Event ID: SERVER_SHUTDOWN, Description: Shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: Forced shutdown: %v", err)
	}
}
