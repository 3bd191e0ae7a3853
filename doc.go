// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Table Tamer API server.

Table Tamer is a seating-chart service for event planners: guest lists,
seating tables, drag-and-drop style assignment editing, spreadsheet import
with model-assisted column detection, and a public "find my table" lookup
for guests.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:tabletamer.db JWT_SECRET=... LLM_API_KEY=... go run .

Or with flags:

	go run . -p 8090 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Secret for signing identity tokens
  - LLM_API_KEY (--llm-key): Key for the column-inference model provider

Optional settings:

  - PORT (-p): Server port (default: 8090)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - LLM_API_URL (--llm-url): OpenAI-compatible API root
  - LLM_MODEL (--llm-model): Model name (default: gpt-4o-mini)
  - LOG_LEVEL: debug, info, warn, error

A .env file in the working directory is loaded when present.

# Shutdown

SIGINT/SIGTERM close the listener; in-flight requests are abandoned, which
is acceptable because every write is transactional.
*/
package main
