package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/example/vocabsrs/internal/database"
	"github.com/example/vocabsrs/internal/excel"
	"github.com/example/vocabsrs/internal/notify"
	"github.com/example/vocabsrs/internal/scheduler"
	"github.com/example/vocabsrs/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	st := store.New(database.NewReviewItemRepository())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := st.Load(ctx); err != nil {
		log.Fatalf("Failed to load review items: %v", err)
	}
	log.Printf("Loaded %d review items", st.Len())

	// "vocabsrs import words.xlsx" enters a vocabulary list into the study cycle
	if len(os.Args) > 2 && os.Args[1] == "import" {
		runImport(ctx, st, os.Args[2])
		return
	}

	sched := scheduler.New(st, buildNotifier())
	sched.Start()
	defer sched.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("vocabsrs started. Press Ctrl+C to stop.")
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := st.Flush(shutdownCtx); err != nil {
		log.Printf("Error flushing review items on shutdown: %v", err)
	}
	log.Println("vocabsrs stopped")
}

// buildNotifier returns the Telegram notifier when a token is configured and
// a log-only notifier otherwise
func buildNotifier() scheduler.Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatIDStr == "" {
		return &notify.LogNotifier{}
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Printf("Invalid TELEGRAM_CHAT_ID %q, falling back to log notifier", chatIDStr)
		return &notify.LogNotifier{}
	}

	notifier, err := notify.NewTelegramNotifier(token, chatID)
	if err != nil {
		log.Printf("Failed to create telegram notifier: %v, falling back to log notifier", err)
		return &notify.LogNotifier{}
	}
	return notifier
}

func runImport(ctx context.Context, st *store.Store, filePath string) {
	config := excel.DefaultImportConfig()
	config.FilePath = filePath

	result, err := excel.ImportItems(config, st)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	if err := st.Flush(ctx); err != nil {
		log.Fatalf("Failed to save imported items: %v", err)
	}

	log.Printf("Import finished: %d processed, %d created, %d skipped",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}
