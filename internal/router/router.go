package router

import (
	"time"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/config"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/handler"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/middleware"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/notifier"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/repository"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/service"
	"github.com/kikaxxz/El-Puestito-Desktop/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub *notifier.Hub, dispatcher *worker.Dispatcher, tarifas map[string]decimal.Decimal) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	ordenRepo := repository.NewOrdenRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	asistenciaRepo := repository.NewAsistenciaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	menuSvc := service.NewMenuService(menuRepo)
	ordenSvc := service.NewOrdenService(ordenRepo, menuSvc)
	estacionSvc := service.NewEstacionService(ordenRepo)
	empleadoSvc := service.NewEmpleadoService(empleadoRepo)
	asistenciaSvc := service.NewAsistenciaService(empleadoRepo, asistenciaRepo)
	nominaSvc := service.NewNominaService(asistenciaRepo, tarifas)
	reporteSvc := service.NewReporteService(reporteRepo)
	authSvc := service.NewAuthService(cfg)

	notif := notifier.New(rdb, hub)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ordenesH := handler.NewOrdenesHandler(ordenSvc, menuSvc, notif)
	estacionesH := handler.NewEstacionesHandler(estacionSvc, notif)
	menuH := handler.NewMenuHandler(menuSvc, notif)
	empleadosH := handler.NewEmpleadosHandler(empleadoSvc)
	asistenciaH := handler.NewAsistenciaHandler(asistenciaSvc)
	nominaH := handler.NewNominaHandler(nominaSvc, dispatcher)
	reportesH := handler.NewReportesHandler(reporteSvc, dispatcher, cfg.ReportEmail)
	authH := handler.NewAuthHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/auth/pin", middleware.PinRateLimiter(), authH.ValidarPin)
	r.GET("/ws", hub.ServeWS)

	// Mobile / desktop API — shared key
	api := r.Group("/api", middleware.APIKeyAuth(cfg.APIKey))
	{
		ordenes := api.Group("/ordenes")
		{
			ordenes.POST("", ordenesH.Crear)
			ordenes.GET("/activas", ordenesH.Tablero)
			ordenes.POST("/separar", ordenesH.Separar)
			ordenes.POST("/eliminar-items", ordenesH.EliminarItems)
			ordenes.POST("/cancelar", ordenesH.Cancelar)
			ordenes.POST("/cobrar", ordenesH.Cobrar)
			ordenes.PUT("/nota", ordenesH.ActualizarNota)
		}

		menu := api.Group("/menu")
		{
			menu.GET("", menuH.Obtener)
			menu.POST("/categorias", menuH.CrearCategoria)
			menu.POST("/items", menuH.CrearItem)
			menu.PUT("/items/:id", menuH.ActualizarItem)
			menu.PUT("/items/:id/disponibilidad", menuH.Disponibilidad)
		}

		empleados := api.Group("/empleados")
		{
			empleados.POST("", empleadosH.Crear)
			empleados.GET("", empleadosH.List)
			empleados.PUT("/:id", empleadosH.Actualizar)
			empleados.DELETE("/:id", empleadosH.Eliminar)
		}

		asistencia := api.Group("/asistencia")
		{
			asistencia.POST("/registrar", asistenciaH.Registrar)
			asistencia.POST("/huella", asistenciaH.RegistrarHuella)
			asistencia.POST("/huella/vincular", asistenciaH.VincularHuella)
			asistencia.POST("/huella/desvincular-todas", asistenciaH.DesvincularHuellas)
			asistencia.GET("/hoy", asistenciaH.EventosDeHoy)
			asistencia.DELETE("/historial", asistenciaH.LimpiarHistorial)
		}

		nomina := api.Group("/nomina")
		{
			nomina.GET("", nominaH.Calcular)
			nomina.POST("/exportar", nominaH.Exportar)
			nomina.GET("/:id", nominaH.CalcularEmpleado)
		}

		reportes := api.Group("/reportes")
		{
			reportes.GET("/dia", reportesH.ReporteDia)
			reportes.GET("/graficos", reportesH.DatosGraficos)
			reportes.POST("/enviar-dia", reportesH.EnviarReporteDia)
		}

		api.POST("/kds/mensaje", estacionesH.EnviarMensaje)
	}

	// Browser KDS screens — station token from /auth/pin
	kds := r.Group("/kds/api", middleware.KDSAuth(cfg.JWTSecret))
	{
		kds.GET("/pendientes", estacionesH.Pendientes)
		kds.POST("/marcar-listo", estacionesH.MarcarListo)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
