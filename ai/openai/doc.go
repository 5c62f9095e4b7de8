// Package openai implements the ai interfaces against OpenAI-compatible APIs
// (OpenAI, Ollama, LocalAI, vLLM) via langchaingo.
package openai
