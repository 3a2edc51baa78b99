// @title           StudyBuddy API
// @version         1.0
// @description     Asynchronous study-assistant backend with document ingestion, retrieval-grounded chat and quizzes
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/customHttpClient"
	"github.com/akurra/studybuddy/internal/data/store"
	"github.com/akurra/studybuddy/internal/domain/chatModel"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	jobmodel "github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/internal/domain/quizModel"
	"github.com/akurra/studybuddy/internal/handlers"
	"github.com/akurra/studybuddy/internal/job"
	"github.com/akurra/studybuddy/internal/quiz"
	"github.com/akurra/studybuddy/internal/rag"
	"github.com/akurra/studybuddy/internal/rag/embedding/googleEmbedding"
	"github.com/akurra/studybuddy/internal/rag/extract"
	"github.com/akurra/studybuddy/internal/rag/llm/groq"
	"github.com/akurra/studybuddy/internal/server"
	"github.com/akurra/studybuddy/internal/worker"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//redis first, in-memory fallback when it is offline
	var jobStore jobmodel.JobStore
	var turnStore chatModel.TurnStore
	var chunkStore commonModels.ChunkStore
	var quizStore quizModel.QuizStore

	redisJobStore := store.GetRedisJobStore(serviceContext)
	redisTurnStore := store.GetRedisTurnStore(serviceContext)
	redisChunkStore := store.GetRedisChunkStore(serviceContext)
	redisQuizStore := store.GetRedisQuizStore(serviceContext)

	if redisJobStore == nil || redisTurnStore == nil || redisChunkStore == nil || redisQuizStore == nil {
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			logger.Error("Redis stores are offline. Shutting down.")
			return
		}
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		jobStore = store.InitInMemoryJobStore()
		turnStore = store.InitInMemoryTurnStore()
		chunkStore = store.InitInMemoryChunkStore()
		quizStore = store.InitInMemoryQuizStore()
	} else {
		jobStore = redisJobStore
		turnStore = redisTurnStore
		chunkStore = redisChunkStore
		quizStore = redisQuizStore
	}

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
		TurnStore:         turnStore,
		ChunkStore:        chunkStore,
		QuizStore:         quizStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey)
	llmProvider := groq.GetGroqClient(serviceContext, config.GroqAPIKey, config.GroqModelName)

	if embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	extractor := extract.New(customHttpClient.GetPooledClient())
	ragService := rag.NewService(extractor, embeddingService, llmProvider, chunkStore, turnStore)
	quizService := quiz.NewService(llmProvider, chunkStore, quizStore)

	handlers.InitJobHandler(service)
	handlers.InitQuizHandler(quizService)

	//init worker pool
	worker.InitServices(service, ragService, quizService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
