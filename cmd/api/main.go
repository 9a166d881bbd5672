package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"safeline/internal/adapter/api"
	"safeline/internal/adapter/api/handler"
	apimiddleware "safeline/internal/adapter/api/middleware"
	"safeline/internal/adapter/api/router"
	"safeline/internal/adapter/repository"
	"safeline/internal/infrastructure/token"
	"safeline/internal/infrastructure/websocket"
	"safeline/internal/usecase"
	"safeline/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account from environment variable (production), with a file
	// path fallback for local development.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if cfg.ServiceAccountPath != "" {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	firestoreClient, err := firebaseApp.Firestore(ctx)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	contactRepo := repository.NewFirestoreContactRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	supportRepo := repository.NewFirestoreSupportRepository(firestoreClient)
	resourceRepo := repository.NewFirestoreResourceRepository(firestoreClient)

	tokenManager := token.NewManager(cfg.JWTSecret, cfg.JWTExpiry)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, profileRepo, tokenManager)
	profileUseCase := usecase.NewProfileUseCase(profileRepo)
	contactUseCase := usecase.NewContactUseCase(contactRepo, conversationRepo)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, profileRepo, wsManager)
	alertUseCase := usecase.NewAlertUseCase(conversationRepo, contactRepo, profileRepo, wsManager)
	supportUseCase := usecase.NewSupportUseCase(supportRepo, profileRepo, cfg.SupportLine)
	resourceUseCase := usecase.NewResourceUseCase(resourceRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenManager)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase),
		Profile:   handler.NewProfileHandler(profileUseCase),
		Contact:   handler.NewContactHandler(contactUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		Alert:     handler.NewAlertHandler(alertUseCase),
		Support:   handler.NewSupportHandler(supportUseCase),
		Resource:  handler.NewResourceHandler(resourceUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager, tokenManager, chatUseCase, supportUseCase),
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	router.Setup(e, handlers, authMiddleware, adminMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
