package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/repository/metadata"
	"ppaxe-backend-controller/server/common"
	"ppaxe-backend-controller/server/handler"
)

type Config struct {
	Host      string
	Port      int
	DebugMode bool

	Policy report.AcceptPolicy
	// nil runs tasks through the queues, see handler.Setting
	StartTask func(task *metadata.AnalysisTask, articles []metadata.Article)
	// served on /metrics when set
	MetricsHandler http.Handler
}

type Server struct {
	engine *gin.Engine
	config *Config
}

func New(config *Config) *Server {
	if !config.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	handler.Init(&handler.Setting{Policy: config.Policy, StartTask: config.StartTask})

	eng := gin.New()
	eng.Use(gin.Recovery())
	eng.Use(common.LogRequest)
	eng.Use(cors.Default())

	eng.GET("/ping", pingHandler)
	if config.MetricsHandler != nil {
		eng.GET("/metrics", gin.WrapH(config.MetricsHandler))
	}

	eng.POST("/analyze", handler.Analyze)

	adminGroup := eng.Group("admin")
	{
		adminGroup.POST("/task", handler.CreateTask)
		adminGroup.GET("/listtask", handler.ListTask)
		adminGroup.GET("/task/:id/report", handler.TaskReport)
		adminGroup.GET("/task/:id/csv", handler.TaskCSV)
		adminGroup.POST("/task/:id/neo4j", handler.ExportTask)
	}

	return &Server{
		engine: eng,
		config: config,
	}
}

func pingHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, common.MakeSuccessResp("pong"))
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) RunServer() error {
	return s.engine.Run(fmt.Sprintf("%s:%d", s.config.Host, s.config.Port))
}
