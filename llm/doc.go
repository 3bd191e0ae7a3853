// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package llm asks a language model which spreadsheet columns hold guest
data.

Client speaks the OpenAI chat-completions wire format, so any compatible
provider works. InferColumns sends the first few rows and expects a JSON
verdict ({nameIndex, phoneIndex, hasHeader}); markdown code fences and
surrounding prose in the reply are tolerated. A null name index is an
error (ErrNoNameColumn) — imports never guess at names.
*/
package llm
