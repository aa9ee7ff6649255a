/*
Copyright © 2025 proposalops
*/
package cmd

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/proposalops/docchat-be/config"
	"github.com/proposalops/docchat-be/database"
	"github.com/proposalops/docchat-be/handler"
	"github.com/proposalops/docchat-be/middleware"
	"github.com/proposalops/docchat-be/repository"
	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat assistant server",
	Long:  `Starts the API server: REST chat, websocket chat, document upload and retrieval endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

		mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(cfg.MongoDatabase)

		vectorIndex, err := database.NewWeaviateIndex(cfg.Weaviate)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate: %v", err)
		}

		// init repos
		userRepo := repository.NewUserRepo(mongoDb.Collection("users"))
		docRepo := repository.NewDocumentRepo(mongoDb.Collection("documents"))
		convRepo := repository.NewConversationRepo(
			mongoDb.Collection("conversations"),
			mongoDb.Collection("messages"),
		)

		// AI provider: OpenAI always supplies embeddings; completions can
		// come from Gemini instead.
		openaiService := service.NewOpenAIService(cfg.OpenAI)
		var completion service.CompletionService = openaiService
		if cfg.AIProvider == "gemini" {
			geminiService, err := service.NewGeminiService(cfg.Gemini)
			if err != nil {
				log.Fatalf("Failed to initialize Gemini: %v", err)
			}
			completion = geminiService
		}

		// init services
		nlpService := service.NewNLPService()
		analyzer := service.NewQueryAnalyzer(completion, nlpService, cfg.Retrieval.CallTimeout, logger)
		retrieval := service.NewRetrievalService(docRepo, vectorIndex, openaiService, cfg.Retrieval, logger)
		answers := service.NewAnswerService(completion, cfg.Retrieval.ContentBudget, cfg.Retrieval.CallTimeout)
		chatService := service.NewChatService(analyzer, retrieval, answers, convRepo, logger)
		wsService := service.NewWebSocketService(chatService, logger)
		userService := service.NewUserService(userRepo)
		extractService := service.NewExtractService()
		fileService, err := service.NewFileService(cfg.UploadDir, docRepo, vectorIndex, openaiService, extractService, cfg.Retrieval.CallTimeout, logger)
		if err != nil {
			log.Fatalf("Failed to initialize file service: %v", err)
		}

		// init handlers
		corsHandler := handler.NewCorsHandler()
		loginHandler := handler.NewLoginHandler(userService, cfg.JWTSecret)
		chatHandler := handler.NewChatHandler(chatService)
		searchHandler := handler.NewSearchHandler(analyzer, retrieval)
		uploadHandler := handler.NewUploadHandler(fileService)
		documentHandler := handler.NewDocumentHandler(docRepo)
		conversationHandler := handler.NewConversationHandler(convRepo)
		wsHandler := handler.NewWebSocketHandler(wsService, cfg.JWTSecret)
		userMngHandler := handler.NewUserManageHandler(userService)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, types.DataResponse{Status: true})
		})

		apiV1 := router.Group("/api/v1")
		apiV1.POST("/login", loginHandler.HandleLogin)

		userRoutes := apiV1.Group("/")
		userRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			userRoutes.POST("/chat", chatHandler.HandleChat)
			userRoutes.POST("/documents/upload", uploadHandler.HandleUpload)
			userRoutes.POST("/documents/backfill-embeddings", uploadHandler.HandleBackfill)
			userRoutes.POST("/documents/search", searchHandler.HandleSearch)
			userRoutes.GET("/documents", documentHandler.HandleListDocuments)
			userRoutes.GET("/conversations", conversationHandler.HandleListConversations)
			userRoutes.GET("/conversations/:id/messages", conversationHandler.HandleListMessages)
		}

		// Token arrives as a query parameter on websocket dials.
		router.GET("/ws/chat", wsHandler.HandleChat)

		adminRoutes := router.Group("/admin/api/v1")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.JWTSecret))
		{
			adminRoutes.POST("/users/create", userMngHandler.HandleCreateUser)
			adminRoutes.GET("/users/paginate", userMngHandler.HandlePaginateUsers)
			adminRoutes.GET("/users/get", userMngHandler.HandleGetUser)
			adminRoutes.PUT("/users/update", userMngHandler.HandleUpdateUser)
			adminRoutes.DELETE("/users/delete", userMngHandler.HandleDeleteUser)
		}

		logger.Info().Str("port", cfg.Port).Msg("starting server")
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
