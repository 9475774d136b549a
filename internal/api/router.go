package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/surtekbb/pileta-system/internal/api/handler"
	"github.com/surtekbb/pileta-system/internal/api/middleware"
	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// RouterDeps carries the wired handlers the router mounts. Dependencies are
// assembled in cmd/api.
type RouterDeps struct {
	Auth           *handler.AuthHandler
	Catalog        *handler.CatalogHandler
	Turnos         *handler.TurnoHandler
	Inscripciones  *handler.InscripcionHandler
	Cuotas         *handler.CuotaHandler
	Asistencias    *handler.AsistenciaHandler
	Notificaciones *handler.NotificacionHandler
	Alumnos        *handler.AlumnoHandler
	PasesLibre     *handler.PaseLibreHandler
	CambiosNivel   *handler.CambioNivelHandler

	JWTSecret string
	Revoked   middleware.RevocationChecker
	Log       zerolog.Logger

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pileta"))

	// --- Operational surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public auth routes ---
	e.POST("/login", deps.Auth.Login)
	e.POST("/registro", deps.Auth.Register)
	e.POST("/recuperar-password/verificar", deps.Auth.VerifyRecovery)
	e.POST("/recuperar-password/cambiar", deps.Auth.ResetPassword)

	// --- Authenticated routes ---
	auth := middleware.Auth(deps.JWTSecret, deps.Revoked)
	adminOnly := middleware.RBAC(domain.RoleCoordinator, domain.RoleSecretary)
	staffOnly := middleware.RBAC(domain.RoleCoordinator, domain.RoleSecretary, domain.RoleInstructor)
	clienteOnly := middleware.RBAC(domain.RoleClient)

	authed := e.Group("", auth)
	authed.POST("/logout", deps.Auth.Logout)
	authed.GET("/me", deps.Auth.Me)

	// Notifications belong to every authenticated role.
	authed.GET("/notificaciones", deps.Notificaciones.List)
	authed.GET("/notificaciones/unread", deps.Notificaciones.CountUnread)
	authed.PATCH("/notificaciones/leer-todas", deps.Notificaciones.MarkAllRead)
	authed.PATCH("/notificaciones/:id/leer", deps.Notificaciones.MarkRead)
	authed.DELETE("/notificaciones/leidas", deps.Notificaciones.DeleteRead)
	authed.DELETE("/notificaciones/:id", deps.Notificaciones.Delete)

	// Catalog reads are visible to all staff; writes stay with the admins.
	staff := e.Group("", auth, staffOnly)
	staff.GET("/niveles", deps.Catalog.ListNiveles)
	staff.GET("/piletas", deps.Catalog.ListPiletas)
	staff.GET("/profesores", deps.Catalog.ListProfesores)
	staff.GET("/turnos", deps.Turnos.List)
	staff.GET("/turnos/por-niveles", deps.Turnos.PorNiveles)
	staff.GET("/turnos/:id", deps.Turnos.Get)
	staff.GET("/turnos/:id/clases", deps.Turnos.ListClases)
	staff.GET("/turnos/:id/inscripciones", deps.Inscripciones.ListByTurno)
	staff.GET("/turnos/:id/asistencias", deps.Asistencias.ListByTurnoMonth)
	staff.POST("/clases/:id/asistencias", deps.Asistencias.Registrar)
	staff.POST("/cambios-nivel", deps.CambiosNivel.Sugerir)

	admin := e.Group("", auth, adminOnly)
	admin.POST("/niveles", deps.Catalog.CreateNivel)
	admin.PUT("/niveles/:id", deps.Catalog.UpdateNivel)
	admin.DELETE("/niveles/:id", deps.Catalog.DeleteNivel)
	admin.POST("/piletas", deps.Catalog.CreatePileta)
	admin.PUT("/piletas/:id", deps.Catalog.UpdatePileta)
	admin.DELETE("/piletas/:id", deps.Catalog.DeletePileta)
	admin.POST("/profesores", deps.Catalog.CreateProfesor)
	admin.PUT("/profesores/:id", deps.Catalog.UpdateProfesor)
	admin.DELETE("/profesores/:id", deps.Catalog.DeleteProfesor)

	admin.POST("/turnos", deps.Turnos.Create)
	admin.PUT("/turnos/:id", deps.Turnos.Update)
	admin.PATCH("/turnos/:id", deps.Turnos.Patch)
	admin.DELETE("/turnos/:id", deps.Turnos.Delete)
	admin.POST("/turnos/:id/generar-clases", deps.Turnos.GenerarClases)

	admin.POST("/alumnos", deps.Alumnos.Create)
	admin.GET("/alumnos", deps.Alumnos.Search)
	admin.GET("/alumnos/pendientes", deps.Alumnos.ListPending)
	admin.GET("/alumnos/inasistentes", deps.Asistencias.Inasistentes)
	admin.PATCH("/alumnos/:id/aprobar", deps.Alumnos.Approve)

	admin.GET("/cambios-nivel/pendientes", deps.CambiosNivel.ListPendientes)
	admin.POST("/cambios-nivel/:id/aprobar", deps.CambiosNivel.Aprobar)
	admin.POST("/cambios-nivel/:id/rechazar", deps.CambiosNivel.Rechazar)

	admin.GET("/cuotas", deps.Cuotas.List)
	admin.POST("/cuotas", deps.Cuotas.Create)
	admin.PATCH("/cuotas/:id/pagar", deps.Cuotas.MarkPagada)

	admin.POST("/notificaciones", deps.Notificaciones.Send)

	// Enrollment is shared: admins manage any alumno, clientes manage
	// themselves (ownership enforced in the handler).
	enroll := e.Group("", auth, middleware.RBAC(domain.RoleCoordinator, domain.RoleSecretary, domain.RoleClient))
	enroll.POST("/inscripciones", deps.Inscripciones.Create)
	enroll.DELETE("/inscripciones/:id", deps.Inscripciones.Delete)

	cliente := e.Group("", auth, clienteOnly)
	cliente.GET("/mis-inscripciones", deps.Inscripciones.ListMine)
	cliente.GET("/mis-cuotas", deps.Cuotas.ListMine)
	cliente.GET("/mis-turnos", deps.Turnos.List)
	cliente.GET("/mi-estado-cuenta", deps.Cuotas.EstadoCuenta)
	cliente.GET("/mi-estado-cuenta/movimientos", deps.Cuotas.Movimientos)

	// Pase libre booking is cliente-owned; the service rejects regulars.
	cliente.GET("/pases-libre/disponibles", deps.PasesLibre.Disponibles)
	cliente.GET("/pases-libre/mis-reservas", deps.PasesLibre.MisReservas)
	cliente.POST("/pases-libre", deps.PasesLibre.Reservar)
	cliente.DELETE("/pases-libre/:id", deps.PasesLibre.Cancelar)

	return e
}
