package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/jotter-dev/jotter/internal/handlers"
	"github.com/jotter-dev/jotter/internal/middleware"
	"github.com/jotter-dev/jotter/internal/types"
	"go.uber.org/zap"
)

type Dependencies struct {
	Schema  *graphql.Schema
	DB      handlers.Pinger
	Logger  *zap.Logger
	Metrics *middleware.Metrics
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		deps.Logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", ctx.Request.URL.Path))
		ctx.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(deps.Metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    types.AllowedMethods,
		AllowHeaders:    types.AllowedHeaders,
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	graphqlHandler := handlers.GraphQL(deps.Schema, deps.Logger)
	r.GET(types.GraphQLPath, graphqlHandler)
	r.POST(types.GraphQLPath, graphqlHandler)

	api := r.Group(types.APIPrefix)
	{
		api.GET(types.HealthPath, handlers.HealthCheck(deps.DB))
	}

	r.GET(types.MetricsPath, gin.WrapH(deps.Metrics.Handler()))

	return r
}
