package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Xek-YP/ya-note/internal/auth"
	"github.com/Xek-YP/ya-note/internal/mcp"
	"github.com/Xek-YP/ya-note/internal/middleware"
	"github.com/Xek-YP/ya-note/internal/store/sqlstore"
	"github.com/Xek-YP/ya-note/internal/web"
)

func main() {
	// Determine database type from environment (default SQLite)
	dbDriver := os.Getenv("DB_DRIVER")
	if dbDriver == "" {
		dbDriver = "sqlite3"
	}
	dbConnStr := os.Getenv("DB_CONN")
	if dbConnStr == "" {
		dbConnStr = "./ya_note.db"
	}
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	st, err := sqlstore.New(dbDriver, dbConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	sessions := auth.NewSessions()

	handlers, err := web.NewHandlers(st, sessions)
	if err != nil {
		log.Fatalf("Failed to initialize handlers: %v", err)
	}

	mux := handlers.Routes()
	mux.Handle("/mcp/", mcp.NewHTTPServer(st))

	// Apply middleware: Logging -> Auth
	handler := middleware.Logging(middleware.Auth(sessions, st, mux))

	log.Printf("Server started at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
