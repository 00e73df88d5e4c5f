package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"stayBack/internal/config"
	"stayBack/internal/handlers"
	"stayBack/internal/repositories"
	"stayBack/internal/search"
	services "stayBack/internal/services"
	"stayBack/utils"
)

type application struct {
	errorLog           *log.Logger
	infoLog            *log.Logger
	cfg                config.Config
	db                 *sql.DB
	wsManager          *TalkManager
	userHandler        *handlers.UserHandler
	userRepo           *repositories.UserRepository
	propertyHandler    *handlers.PropertyHandler
	propertyRepo       *repositories.PropertyRepository
	reservationHandler *handlers.ReservationHandler
	reservationRepo    *repositories.ReservationRepository
	wishlistHandler    *handlers.WishlistHandler
	wishlistRepo       *repositories.WishlistRepository
	searchHandler      *handlers.SearchHandler
	talkHandler        *handlers.TalkHandler
	talkRepo           *repositories.TalkRepository
}

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	propertyRepo := repositories.PropertyRepository{DB: db}
	reservationRepo := repositories.ReservationRepository{DB: db}
	wishlistRepo := repositories.WishlistRepository{DB: db}
	talkRepo := repositories.TalkRepository{DB: db}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	searchClient, err := search.New(cfg.Elastic.URL, errorLog)
	if err != nil {
		errorLog.Printf("Elasticsearch unavailable, search disabled: %v", err)
		searchClient = nil
	}

	tokens, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	wsManager := NewTalkManager()

	// Services
	userService := &services.UserService{UserRepo: &userRepo, Tokens: tokens}
	notificationService := &services.NotificationService{
		UserRepo: &userRepo,
		SMTP: services.SMTPConfig{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			From: cfg.SMTP.From,
		},
		FCM:      newMessagingClient(cfg, errorLog),
		ErrorLog: errorLog,
	}
	reservationService := &services.ReservationService{
		Store:    &reservationRepo,
		Notifier: notificationService,
		ErrorLog: errorLog,
	}
	propertyService := &services.PropertyService{
		PropertyRepo: &propertyRepo,
		Search:       searchClient,
		RDB:          rdb,
		ErrorLog:     errorLog,
	}
	searchService := &services.SearchService{
		Search:       searchClient,
		PropertyRepo: &propertyRepo,
		RDB:          rdb,
		ErrorLog:     errorLog,
	}
	wishlistService := &services.WishlistService{WishlistRepo: &wishlistRepo, PropertyRepo: &propertyRepo}
	talkService := &services.TalkService{TalkRepo: &talkRepo, Sink: wsManager}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	propertyHandler := &handlers.PropertyHandler{Service: propertyService}
	reservationHandler := &handlers.ReservationHandler{Service: reservationService, PropertyService: propertyService}
	wishlistHandler := &handlers.WishlistHandler{Service: wishlistService}
	searchHandler := &handlers.SearchHandler{Service: searchService}
	talkHandler := &handlers.TalkHandler{Service: talkService}

	return &application{
		errorLog:           errorLog,
		infoLog:            infoLog,
		cfg:                cfg,
		db:                 db,
		wsManager:          wsManager,
		userHandler:        userHandler,
		userRepo:           &userRepo,
		propertyHandler:    propertyHandler,
		propertyRepo:       &propertyRepo,
		reservationHandler: reservationHandler,
		reservationRepo:    &reservationRepo,
		wishlistHandler:    wishlistHandler,
		wishlistRepo:       &wishlistRepo,
		searchHandler:      searchHandler,
		talkHandler:        talkHandler,
	}
}

func newMessagingClient(cfg config.Config, errorLog *log.Logger) *messaging.Client {
	if cfg.Firebase.CredentialsFile == "" {
		return nil
	}
	ctx := context.Background()
	fbApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	if err != nil {
		errorLog.Printf("Firebase init failed, push disabled: %v", err)
		return nil
	}
	client, err := fbApp.Messaging(ctx)
	if err != nil {
		errorLog.Printf("Firebase messaging init failed, push disabled: %v", err)
		return nil
	}
	return client
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
