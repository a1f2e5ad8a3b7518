// cmd/mcp-server/main.go: HTTP tool server for a mathsinterp session
//
// Exposes the interpreter tools as an HTTP endpoint for agent frameworks. All requests
// share one session, so assignments made by one call are visible to the next.
//
// Usage:
//
//	go run ./cmd/mcp-server --port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/njchilds90/mathsinterp"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// CLI represents the command-line interface
var CLI struct {
	Port   int    `help:"Port to listen on" default:"8080"`
	Config string `help:"Configuration file path" default:"mathsi.yaml"`
}

func main() {
	kong.Parse(&CLI, kong.Description("Serve mathsinterp tools over HTTP."))

	config, err := mathsinterp.LoadConfig(CLI.Config)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ip := mathsinterp.New(config)

	addr := fmt.Sprintf(":%d", CLI.Port)
	log.Printf("mathsinterp MCP server listening on %s", addr)
	log.Printf("  POST /tool   - execute a tool call")
	log.Printf("  GET  /schema - tool schema for agent registration")
	log.Printf("  GET  /health - health check")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(ip),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func newMux(ip *mathsinterp.Interpreter) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /tool: handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[%s] panic in /tool: %v\n%s", requestID, rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req mathsinterp.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, mathsinterp.ToolResponse{Error: err.Error(), RequestID: requestID})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, mathsinterp.ToolResponse{Error: "invalid JSON: trailing data", RequestID: requestID})
			return
		}

		start := time.Now()
		resp := ip.HandleToolCall(req)
		resp.RequestID = requestID
		if resp.Error != "" {
			log.Printf("[%s] tool=%s error=%q (%s)", requestID, req.Tool, resp.Error, time.Since(start))
		} else {
			log.Printf("[%s] tool=%s ok (%s)", requestID, req.Tool, time.Since(start))
		}
		writeJSON(w, http.StatusOK, resp)
	})

	// GET /schema: return tool schema for agent registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, mathsinterp.MCPToolSpec())
	})

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"symbols": len(ip.Symbols()),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	return mux
}

// writeJSON encodes v before writing the status, so an unencodable value becomes a 500
// instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("[%s] failed to encode response: %v", w.Header().Get("X-Request-Id"), err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Printf("[%s] failed to write response: %v", w.Header().Get("X-Request-Id"), err)
	}
}
