package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/okravets/freightdesk/internal/assistant"
	"github.com/okravets/freightdesk/internal/cli"
	"github.com/okravets/freightdesk/internal/config"
	"github.com/okravets/freightdesk/internal/conversation"
	"github.com/okravets/freightdesk/internal/db"
	"github.com/okravets/freightdesk/internal/kv"
	"github.com/okravets/freightdesk/internal/llm"
	"github.com/okravets/freightdesk/internal/tasks"
	"github.com/okravets/freightdesk/internal/timer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	cfg, err := config.Read(dataDir)
	if err != nil {
		return err
	}

	// Open database
	dbPath := os.Getenv("FREIGHTDESK_DB")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "freightdesk.db")
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := kv.NewSQLiteStore(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire state, rehydrating from the store. Corrupt or missing state
	// starts clean; only real storage errors abort startup.
	ctx := context.Background()

	tracker := timer.New(store)
	if err := tracker.Load(ctx); err != nil {
		return fmt.Errorf("loading timer state: %w", err)
	}

	conversations := conversation.NewStore(store, conversation.WithUnitOfWork(uow))
	if err := conversations.Load(ctx); err != nil {
		return fmt.Errorf("loading conversations: %w", err)
	}

	taskStore := tasks.NewStore(store)
	if err := taskStore.Load(ctx); err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	// Wire the LLM client
	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewClient(llmCfg, observer)

	svc := assistant.NewService(client, conversations,
		assistant.WithHistoryWindow(cfg.Assistant.HistoryWindow),
		assistant.WithMaxContentChars(cfg.Assistant.MaxContentChars),
		assistant.WithLogWriter(os.Stderr),
	)
	analyzer := assistant.NewAnalyzer(client,
		assistant.WithAnalyzerMaxContentChars(cfg.Assistant.MaxContentChars))
	files := assistant.NewFileContext(store,
		assistant.WithFileMaxContentChars(cfg.Assistant.MaxContentChars))

	app := &cli.App{
		Tasks:         taskStore,
		Timer:         tracker,
		Conversations: conversations,
		Assistant:     svc,
		Analyzer:      analyzer,
		Files:         files,
		Config:        cfg,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
