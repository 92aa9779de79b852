// Copyright 2024 Police Portal Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main provides the police portal assistant HTTP service.
// It answers incident queries in English, Hindi and Marathi, keeps
// per-session conversation memory and issues report tokens.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/your-org/police-portal-assistant/internal/assistant"
	"github.com/your-org/police-portal-assistant/internal/config"
	"github.com/your-org/police-portal-assistant/internal/health"
	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
	"github.com/your-org/police-portal-assistant/internal/querylog"
	"github.com/your-org/police-portal-assistant/internal/session"
	"github.com/your-org/police-portal-assistant/internal/sms"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ServiceVersion is reported by the health endpoint
	ServiceVersion = "1.0.0"
	// HealthCheckTimeout is the timeout for health checks
	HealthCheckTimeout = 5 * time.Second
)

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse represents a chat response
type ChatResponse struct {
	SessionID  string  `json:"session_id"`
	Text       string  `json:"text"`
	EntryID    string  `json:"entry_id,omitempty"`
	Contextual bool    `json:"contextual"`
	Score      float64 `json:"score,omitempty"`
	Language   string  `json:"language"`
}

// SessionRequest represents a session creation request
type SessionRequest struct {
	Language string `json:"language"`
}

// SessionResponse represents a created or updated session
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Language  string    `json:"language"`
	Welcome   string    `json:"welcome,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LanguageRequest represents a session language change
type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// ReportRequest represents a report filing request
type ReportRequest struct {
	EntryID  string `json:"entry_id" binding:"required"`
	Language string `json:"language"`
	Phone    string `json:"phone,omitempty"`
}

// ReportResponse carries the issued report token and, when a phone
// number was supplied, the confirmation SMS that was dispatched.
type ReportResponse struct {
	Token    string `json:"token"`
	EntryID  string `json:"entry_id"`
	Incident string `json:"incident"`
	SMS      string `json:"sms,omitempty"`
	SentTo   string `json:"sent_to,omitempty"`
}

// ServiceDependencies holds initialized service dependencies
type ServiceDependencies struct {
	Store          *knowledge.Store
	Engine         *assistant.Engine
	SessionManager *session.Manager
	QueryLog       *querylog.Store
	Notifier       *sms.Notifier
	Logger         *zap.Logger
	Config         *config.Config
}

func main() {
	// Local overrides for development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	maskedConfig := cfg.MaskSensitiveValues()
	logger.Info("Configuration loaded successfully",
		zap.String("service", "assistant"),
		zap.String("environment", os.Getenv("ENVIRONMENT")),
		zap.Int("port", maskedConfig.Server.Port),
		zap.Float64("match_threshold", maskedConfig.Assistant.MatchThreshold),
		zap.String("default_language", maskedConfig.Assistant.DefaultLanguage),
		zap.String("querylog_db_path", maskedConfig.QueryLog.DBPath),
		zap.String("sms_gateway_url", maskedConfig.SMS.GatewayURL),
		zap.String("sms_api_key", maskedConfig.SMS.APIKey),
	)

	deps, err := initializeDependencies(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer func() {
		if err := deps.QueryLog.Close(); err != nil {
			logger.Warn("Failed to close query log", zap.Error(err))
		}
		if err := deps.SessionManager.Close(); err != nil {
			logger.Warn("Failed to close session manager", zap.Error(err))
		}
	}()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	healthManager := health.NewManager("assistant", ServiceVersion, logger)
	setupHealthChecks(healthManager, deps)

	router := setupRouter(deps, healthManager)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting assistant service",
		zap.String("addr", addr),
		zap.Int("catalog_entries", deps.Store.Len()),
	)

	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// initializeLogger creates a logger based on configuration settings
func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if cfg.Logging.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	switch cfg.Logging.Level {
	case "debug":
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	if cfg.Logging.Output == "file" {
		zapConfig.OutputPaths = []string{"assistant.log"}
		zapConfig.ErrorOutputPaths = []string{"assistant.log"}
	} else {
		zapConfig.OutputPaths = []string{"stdout"}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	return zapConfig.Build()
}

// initializeDependencies initializes all service dependencies
func initializeDependencies(cfg *config.Config, logger *zap.Logger) (*ServiceDependencies, error) {
	logger.Info("Initializing service dependencies")

	store, err := knowledge.Load(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load incident catalog: %w", err)
	}

	engine := assistant.NewEngine(store, cfg.Assistant.MatchThreshold, logger)

	sessionManager, err := session.NewManager(session.Config{
		DefaultTTL:      cfg.Session.DefaultTTL,
		MaxSessions:     cfg.Session.MaxSessions,
		CleanupInterval: cfg.Session.CleanupInterval,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}

	queryLog, err := querylog.NewStore(cfg.QueryLog.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open query log: %w", err)
	}

	// The HTTP gateway sender is configured per deployment; without a
	// gateway URL confirmations go to the log only.
	var sender sms.Sender = sms.NewLogSender(logger)
	if cfg.SMS.GatewayURL != "" {
		sender = sms.NewGatewaySender(cfg.SMS.GatewayURL, cfg.SMS.APIKey, nil, logger)
	}
	notifier := sms.NewNotifier(sender, logger)

	logger.Info("Service dependencies initialized successfully",
		zap.Int("catalog_entries", store.Len()))

	return &ServiceDependencies{
		Store:          store,
		Engine:         engine,
		SessionManager: sessionManager,
		QueryLog:       queryLog,
		Notifier:       notifier,
		Logger:         logger,
		Config:         cfg,
	}, nil
}

// setupHealthChecks configures health checks for the assistant service
func setupHealthChecks(manager *health.Manager, deps *ServiceDependencies) {
	manager.AddChecker("catalog", health.CatalogChecker(deps.Store.Len))

	manager.AddChecker("sessions", health.SessionChecker(func() int {
		count, err := deps.SessionManager.Count(context.Background())
		if err != nil {
			return 0
		}
		return count
	}, deps.Config.Session.MaxSessions))

	manager.AddChecker("querylog", health.DatabaseChecker("querylog", deps.QueryLog.Ping))

	manager.SetTimeout(HealthCheckTimeout)
}

// setupRouter wires all HTTP routes
func setupRouter(deps *ServiceDependencies, healthManager *health.Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", createHealthHandler(healthManager))
	router.POST("/sessions", createSessionHandler(deps))
	router.GET("/sessions/:id", createGetSessionHandler(deps))
	router.PUT("/sessions/:id/language", createLanguageHandler(deps))
	router.DELETE("/sessions/:id", createDeleteSessionHandler(deps))
	router.POST("/chat", createChatHandler(deps))
	router.POST("/reports", createReportHandler(deps))
	router.GET("/topics", createTopicsHandler(deps))
	router.GET("/station", createStationHandler(deps))
	router.GET("/contacts", createContactsHandler(deps))
	router.GET("/stats", createStatsHandler(deps))

	return router
}

func createHealthHandler(manager *health.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := manager.Check(c.Request.Context())

		statusCode := http.StatusOK
		if result.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, result)
	}
}

func createSessionHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SessionRequest
		if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		language := deps.Config.DefaultLanguage()
		if req.Language != "" {
			parsed, err := lang.Parse(req.Language)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			language = parsed
		}

		s, err := deps.SessionManager.Create(c.Request.Context(), language)
		if err != nil {
			deps.Logger.Error("Failed to create session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		s.Lock()
		resp := SessionResponse{
			SessionID: s.ID,
			Language:  string(s.Language),
			Welcome:   deps.Engine.Welcome(s.Language),
			ExpiresAt: s.ExpiresAt,
		}
		s.Unlock()

		c.JSON(http.StatusCreated, resp)
	}
}

func createGetSessionHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.SessionManager.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		s.Lock()
		defer s.Unlock()
		c.JSON(http.StatusOK, s)
	}
}

func createLanguageHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LanguageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		s, err := deps.SessionManager.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		language, err := lang.Parse(req.Language)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s.Lock()
		defer s.Unlock()
		if err := deps.SessionManager.SetLanguage(s, language); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, SessionResponse{
			SessionID: s.ID,
			Language:  string(s.Language),
			Welcome:   deps.Engine.Welcome(s.Language),
			ExpiresAt: s.ExpiresAt,
		})
	}
}

func createDeleteSessionHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.SessionManager.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func createChatHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		message := session.SanitizeUserInput(req.Message)
		if message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		s, err := deps.SessionManager.Get(c.Request.Context(), req.SessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		s.Lock()
		answer := deps.Engine.Answer(s.Memory, message, s.Language)
		deps.SessionManager.RecordTurn(s, session.Turn{
			Query:      message,
			Answer:     answer.Text,
			EntryID:    answer.EntryID,
			Contextual: answer.Contextual,
		})
		language := s.Language
		s.Unlock()

		if err := deps.QueryLog.LogTurn(querylog.TurnRecord{
			SessionID:  s.ID,
			Language:   string(language),
			Query:      message,
			EntryID:    answer.EntryID,
			Contextual: answer.Contextual,
			Score:      answer.Score,
		}); err != nil {
			// Activity logging never fails the chat itself.
			deps.Logger.Warn("Failed to log turn", zap.Error(err))
		}

		c.JSON(http.StatusOK, ChatResponse{
			SessionID:  s.ID,
			Text:       answer.Text,
			EntryID:    answer.EntryID,
			Contextual: answer.Contextual,
			Score:      answer.Score,
			Language:   string(language),
		})
	}
}

func createReportHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}

		entry := deps.Store.ByID(req.EntryID)
		if entry == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown incident entry: " + req.EntryID})
			return
		}

		language := deps.Config.DefaultLanguage()
		if req.Language != "" {
			parsed, err := lang.Parse(req.Language)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			language = parsed
		}

		token, err := deps.QueryLog.IssueToken(time.Now(), entry.ID, req.Phone)
		if err != nil {
			deps.Logger.Error("Failed to issue report token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue report token"})
			return
		}

		resp := ReportResponse{
			Token:    token.Value,
			EntryID:  entry.ID,
			Incident: entry.Incident,
		}

		if req.Phone != "" {
			msg, err := deps.Notifier.NotifyReportFiled(entry, language, req.Phone, token.Value)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Token issued but confirmation not sent: " + err.Error(),
					"token": token.Value,
				})
				return
			}
			resp.SMS = msg.Body
			resp.SentTo = msg.To
		}

		c.JSON(http.StatusCreated, resp)
	}
}

func createTopicsHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"topics": deps.Store.Topics(),
			"count":  deps.Store.Len(),
		})
	}
}

func createStationHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		language, ok := queryLanguage(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"language": string(language),
			"station":  knowledge.StationInfo(language),
		})
	}
}

func createContactsHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		language, ok := queryLanguage(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"language": string(language),
			"contacts": knowledge.OfficerContacts(language),
		})
	}
}

func createStatsHandler(deps *ServiceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := deps.QueryLog.GetStats()
		if err != nil {
			deps.Logger.Error("Failed to read stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// queryLanguage resolves the optional lang query parameter, falling back
// to the configured default.
func queryLanguage(c *gin.Context, deps *ServiceDependencies) (lang.Language, bool) {
	raw := c.Query("lang")
	if raw == "" {
		return deps.Config.DefaultLanguage(), true
	}
	language, err := lang.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return language, true
}
