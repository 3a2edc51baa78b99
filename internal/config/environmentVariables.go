package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to the in-memory stores
	TRACE_ID_KEY                    = "traceId"
	NoAuthBypass                    = true //flip for deployments that hand out bearer tokens
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//rag pipeline knobs
	ChunkSizeWords       = 200 //words per chunk, the retrieval unit
	RetrievalTopK        = 3
	MemoryWindowTurns    = 6 //trailing turns rendered into the prompt
	QuizContextChunks    = 5 //first N chunks fed to quiz generation
	DefaultQuizQuestions = 5

	EmbeddingOutputDimensionality int32 = 768
	GoogleEmbeddingModel                = "gemini-embedding-001"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//llm - Groq speaks the OpenAI chat-completions dialect
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	GroqModelName = "llama-3.3-70b-versatile"

	ModelTemperature      float64 = 0.7
	ModelMaxTokens        int64   = 3000
	ModelFrequencyPenalty float64 = 0.2
	ModelPresencePenalty  float64 = 0.2
	ModelContext                  = "You are a friendly AI study tutor. Answer using the supplied document context when it is relevant, " +
		"say so when it is not, and keep explanations complete. Never stop mid-sentence."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//extraction
	ExtractUserAgent    = "studybuddy-bot"
	ExtractFetchTimeout = 15 * time.Second
	PDFPageTimeout      = 10 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore   = 0
	RedisTurnStore  = 1
	RedisChunkStore = 2
	RedisQuizStore  = 3

	//redis timeouts
	RedisJobStoreTTL  = 24 * time.Hour
	RedisTurnStoreTTL = 24 * time.Hour
)

// secrets and addresses come from the environment, never from source
var (
	AuthToken     = os.Getenv("STUDYBUDDY_AUTH_TOKEN")
	GoogleAPIKey  = os.Getenv("GOOGLE_API_KEY")
	GroqAPIKey    = os.Getenv("GROQ_API_KEY")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
)
