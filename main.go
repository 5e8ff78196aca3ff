package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"gift-service/internal/assist"
	"gift-service/internal/config"
	"gift-service/internal/db"
	"gift-service/internal/handlers"
	"gift-service/internal/middleware"
	"gift-service/internal/observability"
	"gift-service/internal/places"
	"gift-service/internal/rabbitmq"
	"gift-service/internal/repositories"
	"gift-service/internal/storage"
	"gift-service/internal/telemetry"
	"gift-service/internal/ws"
	"gift-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel)

	shutdownTracing, err := setupTracing(cfg.OTLPEndpoint)
	if err != nil {
		log.WithError(err).Warn("tracing disabled")
	} else {
		defer shutdownTracing()
	}

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to db")
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	log.WithField("mode", rabbitmq.PublisherMode(publisher)).Info("audit publisher ready")
	audit := telemetry.NewAuditEmitter(publisher, "audit.gift_service", "gift-service", cfg.Environment)

	if cfg.AMQPURL != "" {
		wsPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.WithError(err).Warn("ws event publisher disabled")
		} else {
			observability.SetPublisher(wsPublisher)
			defer wsPublisher.Close()
		}
	}

	userRepo := repositories.NewUserRepo(database)
	giftRepo := repositories.NewGiftRepo(database)
	basketRepo := repositories.NewBasketRepo(database)
	collabRepo := repositories.NewCollabGiftRepo(database)
	draftRepo := repositories.NewDraftRepo(database)
	nudgeRepo := repositories.NewNudgeRepo(database)
	inviteRepo := repositories.NewInviteRepo(database)

	hub := ws.NewHub()

	var audioStore storage.AudioStore
	if gcsStore, err := storage.NewGCSAudioStore(context.Background(), cfg.AudioBucket); err != nil {
		log.WithError(err).Warn("audio storage disabled")
	} else {
		audioStore = gcsStore
		defer gcsStore.Close()
	}

	var assistClient assist.Client
	if cfg.OpenAIAPIKey != "" {
		assistClient = assist.NewOpenAIClient(cfg.OpenAIAPIKey)
	} else {
		log.Warn("OPENAI_API_KEY not set, transcription and prompts disabled")
	}

	var placesClient places.Client
	if cfg.MapsAPIKey != "" {
		mapsClient, err := places.NewMapsClient(cfg.MapsAPIKey)
		if err != nil {
			log.WithError(err).Warn("places disabled")
		} else {
			placesClient = mapsClient
		}
	} else {
		log.Warn("MAPS_API_KEY not set, places disabled")
	}

	giftHandler := handlers.NewGiftHandler(giftRepo, userRepo, hub, audit)
	collabHandler := handlers.NewCollabHandler(basketRepo, collabRepo, userRepo, hub, audit)
	draftHandler := handlers.NewDraftHandler(draftRepo)
	presenceHandler := handlers.NewPresenceHandler(userRepo, hub)
	nudgeHandler := handlers.NewNudgeHandler(nudgeRepo, userRepo, hub)
	inviteHandler := handlers.NewInviteHandler(inviteRepo, userRepo, hub)
	mediaHandler := handlers.NewMediaHandler(audioStore, assistClient)
	placesHandler := handlers.NewPlacesHandler(placesClient)
	feedWS := ws.NewFeedWebSocketHandler(hub, userRepo)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(otelgin.Middleware("gift-service"))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/users", presenceHandler.CreateUser)

	identity := middleware.IdentityMiddleware(userRepo)

	router.GET("/friends", identity, presenceHandler.ListFriends)
	router.PUT("/presence", identity, presenceHandler.UpdatePresence)
	router.PUT("/presence/favorites", identity, presenceHandler.UpdateFavorites)

	router.POST("/gifts", identity, giftHandler.CreateGift)
	router.GET("/gifts/sent", identity, giftHandler.ListSent)
	router.GET("/gifts/received", identity, giftHandler.ListReceived)
	router.GET("/gifts/:gift_id", identity, giftHandler.GetGift)
	router.POST("/gifts/:gift_id/open", identity, giftHandler.OpenGift)
	router.POST("/gifts/:gift_id/unsend", identity, giftHandler.UnsendGift)
	router.POST("/gifts/:gift_id/arrival", identity, giftHandler.CheckArrival)

	router.PUT("/collab/sessions/:session_id/basket", identity, collabHandler.UpsertBasketItem)
	router.GET("/collab/sessions/:session_id/basket", identity, collabHandler.ListBasket)
	router.GET("/collab/sessions/:session_id/basket/count", identity, collabHandler.BasketCount)
	router.DELETE("/collab/sessions/:session_id/basket/:item_id", identity, collabHandler.DeleteBasketItem)
	router.POST("/collab/sessions/:session_id/finalize", identity, collabHandler.Finalize)
	router.GET("/collab/gifts/sent", identity, collabHandler.ListSentCollab)
	router.GET("/collab/gifts/received", identity, collabHandler.ListReceivedCollab)
	router.GET("/collab/gifts/:gift_id", identity, collabHandler.GetCollabGift)
	router.POST("/collab/gifts/:gift_id/open", identity, collabHandler.OpenCollabGift)
	router.POST("/collab/gifts/:gift_id/unsend", identity, collabHandler.UnsendCollabGift)

	router.POST("/drafts", identity, draftHandler.CreateDraft)
	router.GET("/drafts", identity, draftHandler.ListDrafts)
	router.GET("/drafts/:draft_id", identity, draftHandler.GetDraft)
	router.PUT("/drafts/:draft_id", identity, draftHandler.UpdateDraft)
	router.DELETE("/drafts/:draft_id", identity, draftHandler.DeleteDraft)
	router.POST("/collab/drafts", identity, draftHandler.CreateCollabDraft)
	router.GET("/collab/drafts", identity, draftHandler.ListCollabDrafts)
	router.GET("/collab/drafts/:draft_id", identity, draftHandler.GetCollabDraft)
	router.PUT("/collab/drafts/:draft_id", identity, draftHandler.UpdateCollabDraft)
	router.DELETE("/collab/drafts/:draft_id", identity, draftHandler.DeleteCollabDraft)

	router.POST("/nudges", identity, nudgeHandler.CreateNudge)
	router.GET("/nudges/received", identity, nudgeHandler.ListReceived)
	router.POST("/nudges/:nudge_id/seen", identity, nudgeHandler.MarkSeen)
	router.POST("/nudges/:nudge_id/undo", identity, nudgeHandler.Undo)

	router.POST("/invites", identity, inviteHandler.CreateInvite)
	router.GET("/invites/received", identity, inviteHandler.ListReceived)
	router.POST("/invites/:invite_id/respond", identity, inviteHandler.Respond)

	router.POST("/media/recordings", identity, mediaHandler.UploadRecording)
	router.POST("/media/recordings/url", identity, mediaHandler.RefreshRecordingURL)
	router.POST("/media/transcriptions", identity, mediaHandler.Transcribe)
	router.POST("/assist/prompts", identity, mediaHandler.GeneratePrompts)

	router.GET("/places/nearby", identity, placesHandler.Nearby)
	router.GET("/places/geocode", identity, placesHandler.Geocode)
	router.GET("/places/directions", identity, placesHandler.Directions)
	router.GET("/places/:place_id", identity, placesHandler.Details)

	router.GET("/ws/feed", feedWS.Handle)

	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	log.WithField("port", cfg.Port).Info("starting gift service")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

// setupTracing wires the OTLP gRPC exporter and returns a shutdown func.
func setupTracing(endpoint string) (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("gift-service")),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = tp.Shutdown(shutdownCtx)
	}, nil
}
