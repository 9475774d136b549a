package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/surtekbb/pileta-system/internal/api"
	"github.com/surtekbb/pileta-system/internal/api/handler"
	"github.com/surtekbb/pileta-system/internal/core/service"
	"github.com/surtekbb/pileta-system/internal/infrastructure/config"
	mongodb "github.com/surtekbb/pileta-system/internal/infrastructure/db/mongo"
	redisdb "github.com/surtekbb/pileta-system/internal/infrastructure/db/redis"
	"github.com/surtekbb/pileta-system/internal/infrastructure/queue"
	"github.com/surtekbb/pileta-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "pileta-api",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting pileta API")

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	nivelRepo := mongodb.NewNivelRepository(db)
	piletaRepo := mongodb.NewPiletaRepository(db)
	profesorRepo := mongodb.NewProfesorRepository(db)
	turnoRepo := mongodb.NewTurnoRepository(db)
	claseRepo := mongodb.NewClaseRepository(db)
	inscripcionRepo := mongodb.NewInscripcionRepository(db)
	cuotaRepo := mongodb.NewCuotaRepository(db)
	asistenciaRepo := mongodb.NewAsistenciaRepository(db)
	notificacionRepo := mongodb.NewNotificacionRepository(db)
	reservaRepo := mongodb.NewReservaRepository(db)
	cambioNivelRepo := mongodb.NewCambioNivelRepository(db)

	resetTokens := redisdb.NewResetTokenStore(rdb)
	denylist := redisdb.NewDenylist(rdb)
	dedup := redisdb.NewDedupMarker(rdb)

	// --- Services ---
	authSvc := service.NewAuthService(userRepo, resetTokens, denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	catalogSvc := service.NewCatalogService(nivelRepo, piletaRepo, profesorRepo, log)
	turnoSvc := service.NewTurnoService(turnoRepo, claseRepo, nivelRepo, profesorRepo, piletaRepo, log)
	inscripcionSvc := service.NewInscripcionService(inscripcionRepo, turnoRepo, userRepo, log)
	cuotaSvc := service.NewCuotaService(cuotaRepo, userRepo, log)
	asistenciaSvc := service.NewAsistenciaService(asistenciaRepo, claseRepo, userRepo, log)
	notificacionSvc := service.NewNotificacionService(notificacionRepo, dedup, log)
	userSvc := service.NewUserService(userRepo, log)
	paseLibreSvc := service.NewPaseLibreService(reservaRepo, turnoRepo, inscripcionRepo, userRepo, log)
	cambioNivelSvc := service.NewCambioNivelService(cambioNivelRepo, userRepo, nivelRepo, log)

	// --- Background delivery ---
	dispatcher := queue.NewDispatcher(cfg.Notifier.Workers, cfg.Notifier.QueueSize, notificacionSvc, log)
	dispatcher.Start(ctx)

	scanner := queue.NewOverdueScanner(cuotaSvc, dispatcher, cfg.Notifier.ScanInterval, log)
	go scanner.Run(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.RouterDeps{
		Auth:           handler.NewAuthHandler(authSvc),
		Catalog:        handler.NewCatalogHandler(catalogSvc),
		Turnos:         handler.NewTurnoHandler(turnoSvc),
		Inscripciones:  handler.NewInscripcionHandler(inscripcionSvc),
		Cuotas:         handler.NewCuotaHandler(cuotaSvc),
		Asistencias:    handler.NewAsistenciaHandler(asistenciaSvc),
		Notificaciones: handler.NewNotificacionHandler(notificacionSvc, dispatcher),
		Alumnos:        handler.NewAlumnoHandler(userSvc),
		PasesLibre:     handler.NewPaseLibreHandler(paseLibreSvc),
		CambiosNivel:   handler.NewCambioNivelHandler(cambioNivelSvc, dispatcher),
		JWTSecret:      cfg.JWTSecret,
		Revoked:        denylist,
		Log:            log,
		Mongo:          db,
		Redis:          rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("pileta API stopped")
}
