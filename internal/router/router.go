package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"pharmadir/internal/auth"
	"pharmadir/internal/handler"
	"pharmadir/internal/model"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Pharmacy *handler.PharmacyHandler
	Comment  *handler.CommentHandler
	Favorite *handler.FavoriteHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, jwtService *auth.JWTService, h Handlers, log *zap.Logger) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowCredentials: true,
	}))

	e.Validator = NewValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	requireJWT := jwtService.Middleware()
	requireAdmin := auth.RequireRole(string(model.RoleAdmin))

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/forgot-password", h.Auth.ForgotPassword)
	api.POST("/auth/reset-password", h.Auth.ResetPassword)

	pharmacy := api.Group("/pharmacy")
	pharmacy.GET("", h.Pharmacy.FindAll)
	pharmacy.GET("/:id", h.Pharmacy.FindOne)
	pharmacy.POST("", h.Pharmacy.Create, requireJWT, requireAdmin)
	pharmacy.PATCH("/:id", h.Pharmacy.Update, requireJWT, requireAdmin)
	pharmacy.DELETE("/:id", h.Pharmacy.Remove, requireJWT, requireAdmin)
	pharmacy.PATCH("/:id/status", h.Pharmacy.UpdateStatus, requireJWT, requireAdmin)

	comments := api.Group("/comments")
	comments.POST("", h.Comment.Create, requireJWT)
	comments.GET("/:pharmacyId", h.Comment.List)
	comments.DELETE("/:pharmacyId/:commentId", h.Comment.Delete, requireJWT)

	favorites := api.Group("/favorit", requireJWT)
	favorites.POST("", h.Favorite.Add)
	favorites.DELETE("", h.Favorite.Remove)
}
