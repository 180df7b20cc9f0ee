package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"speechcoach/internal/ai"
	"speechcoach/internal/analysis"
	"speechcoach/internal/api"
	"speechcoach/internal/config"
	"speechcoach/internal/store"
	"speechcoach/internal/stt"
	"speechcoach/internal/tts"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Result store, torn down with its sweeper on shutdown
	results := store.New()
	defer results.Close()

	// External-service clients
	openaiClient := openai.NewClient(cfg.OpenAIKey)
	transcriber := stt.NewClient(cfg.DeepgramAPIKey, cfg.Language)
	critic := ai.NewClient(openaiClient)
	synthesizer := tts.NewSynthesizer(openaiClient, cfg.TTSVoice)

	pipeline := analysis.New(transcriber, critic, synthesizer, results)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(500, gin.H{
			"success": false,
			"error":   "Internal server error",
			"message": "an unexpected error occurred",
		})
	}))

	// CORS middleware for browser clients
	r.Use(corsMiddleware())
	r.MaxMultipartMemory = api.MaxUploadBytes

	handler := api.NewHandler(pipeline, results, cfg)
	api.RegisterRoutes(r, handler)

	log.Printf("speechcoach backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for browser clients
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
