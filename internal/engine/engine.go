// Package engine runs the answer pipeline: assemble context, build the
// prompt, dispatch to a generative backend, validate, and fall back to
// deterministic responses when anything along the way degrades.
package engine

import (
	"context"
	"log"

	"github.com/future-self-ai/backend/internal/assembler"
	"github.com/future-self-ai/backend/internal/config"
	"github.com/future-self-ai/backend/internal/fallback"
	"github.com/future-self-ai/backend/internal/llm"
	"github.com/future-self-ai/backend/internal/persona"
	"github.com/future-self-ai/backend/internal/prompt"
	"github.com/future-self-ai/backend/internal/validate"
)

// Engine answers user questions as their future self. Answer never
// returns an error; every failure path ends in a deterministic fallback
// response.
type Engine struct {
	assembler  *assembler.Assembler
	dispatcher *Dispatcher

	maxTokens   int
	maxWords    int
	minLength   int
	temperature float64
}

// New wires an engine from its parts and response settings.
func New(a *assembler.Assembler, d *Dispatcher, resp config.ResponseConfig) *Engine {
	return &Engine{
		assembler:   a,
		dispatcher:  d,
		maxTokens:   resp.MaxTokens,
		maxWords:    resp.MaxWords,
		minLength:   resp.MinLength,
		temperature: resp.Temperature,
	}
}

// Answer produces the future-self response for one user message.
// sessionID scopes retrieval of session-private résumé chunks and may be
// empty. Crisis messages and greetings short-circuit to fixed responses
// and never reach a generative backend. Everything else goes through
// retrieve → prompt → dispatch → validate, and lands in the fallback
// responder when any stage degrades.
func (e *Engine) Answer(ctx context.Context, p persona.Persona, question, careerID, sessionID string, history []llm.Message) string {
	if fallback.IsCrisis(question) {
		return fallback.Crisis(p)
	}
	if fallback.IsGreeting(question) {
		return fallback.Greeting(p, question, len(history) <= 1)
	}

	bundle := e.assembler.Assemble(ctx, careerID, sessionID, question, history)
	text := prompt.Build(p, question, bundle, e.maxWords)

	generated, err := e.dispatcher.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		log.Printf("generation unavailable (%v), using fallback", err)
		return fallback.Respond(p, question)
	}

	if !validate.Check(generated, e.minLength) {
		log.Printf("generated response failed validation, using fallback")
		return fallback.Respond(p, question)
	}
	return generated
}
