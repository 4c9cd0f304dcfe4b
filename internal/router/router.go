// Package router arma el grafo completo de dependencias y declara la tabla
// de rutas. Todo lo que el servidor expone por HTTP está en este archivo.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/config"
	"github.com/naimp074/stock1/internal/handler"
	"github.com/naimp074/stock1/internal/middleware"
	"github.com/naimp074/stock1/internal/repository"
	"github.com/naimp074/stock1/internal/service"
	"github.com/naimp074/stock1/internal/worker"
)

// New construye el engine de gin listo para servir. La cadena es siempre
// handler → service → repository → db/redis; nada salta capas.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// El orden importa: el request id tiene que existir antes de loguear,
	// y Recovery tiene que envolver todo lo que pueda entrar en pánico.
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(1000, time.Minute),
	)

	// Repositorios
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	cuentaRepo := repository.NewCuentaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	notaRepo := repository.NewNotaCreditoRepository(db)
	configRepo := repository.NewConfiguracionRepository(db)

	// Servicios
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, movimientoStockRepo, cfg.NombreNegocio)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, movimientoStockRepo, configRepo, dispatcher, cfg.NombreNegocio)
	cuentaSvc := service.NewCuentaService(cuentaRepo, ventaRepo)
	notaSvc := service.NewNotaCreditoService(notaRepo, ventaRepo, productoRepo, movimientoStockRepo, cfg.NombreNegocio)
	reporteSvc := service.NewReporteService(ventaRepo, productoRepo, notaRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cuentasH := handler.NewCuentasHandler(cuentaSvc)
	notasH := handler.NewNotasCreditoHandler(notaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// Superficie pública: health y autenticación.
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Todo lo demás exige token. "vendedor" es el rol base de mostrador;
	// administrador siempre puede lo que puede el vendedor.
	vendedor := middleware.RequireRole("vendedor", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		// Productos: lectura para el mostrador, escritura solo admin.
		v1.GET("/productos", vendedor, productosH.Listar)
		v1.GET("/productos/stock-pdf", vendedor, productosH.StockPDF)
		v1.GET("/productos/movimientos", vendedor, productosH.MovimientosStock)
		v1.GET("/productos/:id", vendedor, productosH.Obtener)
		v1.PATCH("/productos/:id/stock", admin, productosH.AjustarStock)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.POST("/masivo", productosH.ImportarMasivo)
			prods.POST("/importar-excel", productosH.ImportarExcel)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		// Ventas
		v1.POST("/ventas", vendedor, ventasH.Registrar)
		v1.GET("/ventas", vendedor, ventasH.Listar)
		v1.GET("/ventas/:id", vendedor, ventasH.Obtener)
		v1.GET("/ventas/:id/factura-pdf", vendedor, ventasH.FacturaPDF)

		// Cuentas corrientes y sus movimientos
		cuentas := v1.Group("/cuentas", vendedor)
		{
			cuentas.POST("", cuentasH.Crear)
			cuentas.GET("", cuentasH.Listar)
			cuentas.GET("/:id", cuentasH.Obtener)
			cuentas.PUT("/:id", cuentasH.Actualizar)
		}
		movimientos := v1.Group("/movimientos", vendedor)
		{
			movimientos.POST("", cuentasH.RegistrarMovimiento)
			movimientos.PUT("/:id", cuentasH.ActualizarMovimiento)
			movimientos.DELETE("/:id", admin, cuentasH.EliminarMovimiento)
		}

		// Notas de crédito
		notas := v1.Group("/notas-credito", vendedor)
		{
			notas.POST("", notasH.Crear)
			notas.GET("", notasH.Listar)
			notas.GET("/ventas-disponibles", notasH.VentasDisponibles)
			notas.GET("/estadisticas", notasH.Estadisticas)
			notas.GET("/:id", notasH.Obtener)
			notas.GET("/:id/pdf", notasH.PDF)
			notas.PUT("/:id", notasH.Actualizar)
			notas.DELETE("/:id", admin, notasH.Eliminar)
		}

		// Tablero de reportes
		v1.GET("/reportes/resumen", vendedor, reportesH.Resumen)

		// Administración de cuentas de usuario
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
		}
	}

	// Swagger solo fuera de producción.
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
