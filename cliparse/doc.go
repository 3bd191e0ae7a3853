// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence; environment variables fill the gaps:

	-p / PORT                 server port (default 8090)
	-d / DATABASE_URL         database path or connection string (required)
	-t / DATABASE_TYPE        "sqlite" (default) or "postgres"
	--jwt-secret / JWT_SECRET token signing secret (required)
	--llm-key / LLM_API_KEY   model provider key (required)
	--llm-url / LLM_API_URL   OpenAI-compatible API root
	--llm-model / LLM_MODEL   model name

Secrets should come from the environment in production; the flags exist
for local development.
*/
package cliparse
