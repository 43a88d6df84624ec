// Package llm provides single-turn language model clients used for
// abbreviation resolution and batch transaction classification. It supports
// OpenAI-compatible, Anthropic, and Gemini providers behind one Client
// interface. Calls are synchronous and uncached; there is no retry layer.
package llm
