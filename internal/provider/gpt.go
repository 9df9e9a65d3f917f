// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/olegiv/ocms-translations/internal/config"
	"github.com/olegiv/ocms-translations/internal/webhook"
)

// GPTName is the backend name of the LLM provider.
const GPTName = "gpt"

// Order states reported by the GPT provider.
const (
	GPTStateNew        = "new"
	GPTStateInProgress = "in progress"
	GPTStateDone       = "done"
	GPTStateFailed     = "failed"
)

const defaultGPTModel = "gpt-4o-mini"

var errGPTNotRunning = errors.New("gpt workers not running")

// Completer produces a chat completion for a system and a user message.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GPTConfig configures the GPT provider.
type GPTConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	Workers   int
	QueueSize int
}

type openAICompleter struct {
	client openai.Client
	model  string
}

// NewOpenAICompleter creates a Completer backed by the OpenAI chat API.
func NewOpenAICompleter(cfg GPTConfig, opts ...option.RequestOption) Completer {
	options := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		options = append(options, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}
	options = append(options, opts...)
	model := cfg.Model
	if model == "" {
		model = defaultGPTModel
	}
	return &openAICompleter{client: openai.NewClient(options...), model: model}
}

func (c *openAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model: openai.ChatModel(c.model),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &Error{Provider: GPTName, StatusCode: apiErr.StatusCode, Body: apiErr.Message, Err: err}
		}
		return "", &Error{Provider: GPTName, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrInvalidResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

type gptJob struct {
	orderID string
	req     Request
	payload Payload
}

// GPT translates orders with a language model in background workers and
// posts the result to the request's callback URL, signed with the
// request's signing key. There is no quote selection.
type GPT struct {
	base
	completer  Completer
	dispatcher *webhook.Dispatcher
	logger     *slog.Logger
	workers    int

	jobs    chan gptJob
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
	states  map[string]string
}

var (
	_ StatusChecker  = (*GPT)(nil)
	_ Runner         = (*GPT)(nil)
	_ CallbackSigner = (*GPT)(nil)
)

// NewGPT creates the GPT provider. Results are delivered through dispatcher.
func NewGPT(conf *config.Translations, cfg GPTConfig, completer Completer, dispatcher *webhook.Dispatcher, logger *slog.Logger) *GPT {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 50
	}
	if completer == nil {
		completer = NewOpenAICompleter(cfg)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GPT{
		base:       newBase(GPTName, conf),
		completer:  completer,
		dispatcher: dispatcher,
		logger:     logger,
		workers:    cfg.Workers,
		jobs:       make(chan gptJob, cfg.QueueSize),
		states:     make(map[string]string),
	}
}

// SignsCallbacks reports that results are delivered with a signature.
func (g *GPT) SignsCallbacks() bool {
	return true
}

// Start starts the translation workers.
func (g *GPT) Start(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return
	}
	g.running = true
	g.done = make(chan struct{})
	for i := 0; i < g.workers; i++ {
		g.wg.Add(1)
		go g.worker(ctx, i)
	}
	g.logger.Info("gpt provider started", "workers", g.workers)
}

// Stop stops the workers and waits for running jobs to finish.
func (g *GPT) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	close(g.done)
	g.mu.Unlock()
	g.wg.Wait()
}

// Send queues the order for translation.
func (g *GPT) Send(_ context.Context, req *Request, payload *Payload) (*OrderResult, error) {
	body, err := g.orderBody(req, payload, map[string]any{"Provider": GPTName})
	if err != nil {
		return nil, err
	}

	orderID := uuid.NewString()
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return &OrderResult{Request: body}, &Error{Provider: GPTName, Err: errGPTNotRunning}
	}
	select {
	case g.jobs <- gptJob{orderID: orderID, req: *req, payload: *payload}:
	default:
		return &OrderResult{Request: body}, &Error{Provider: GPTName, Err: errors.New("order queue full")}
	}
	g.states[orderID] = GPTStateNew
	return &OrderResult{
		Request: body,
		Details: map[string]any{"Id": orderID, "Status": "New"},
	}, nil
}

// CheckStatus reports the state of an order accepted by this process.
func (g *GPT) CheckStatus(_ context.Context, _ *Request, details map[string]any) (*Status, error) {
	id, _ := details["Id"].(string)
	if id == "" {
		return nil, fmt.Errorf("order details carry no Id")
	}
	g.mu.RLock()
	state, ok := g.states[id]
	g.mu.RUnlock()
	if !ok {
		state = "unknown"
	}
	return &Status{State: state, Raw: map[string]any{"Id": id, "Status": state}}, nil
}

func (g *GPT) setState(orderID, state string) {
	g.mu.Lock()
	g.states[orderID] = state
	g.mu.Unlock()
}

func (g *GPT) worker(ctx context.Context, id int) {
	defer g.wg.Done()
	for {
		select {
		case <-g.done:
			return
		case <-ctx.Done():
			return
		case job := <-g.jobs:
			g.process(ctx, job)
		}
	}
}

func (g *GPT) process(ctx context.Context, job gptJob) {
	logger := g.logger.With("order_id", job.orderID, "request_id", job.req.ID)
	g.setState(job.orderID, GPTStateInProgress)

	groups, err := g.translate(ctx, &job.req, &job.payload)
	if err != nil {
		g.setState(job.orderID, GPTStateFailed)
		logger.Error("gpt translation failed", "error", err)
		return
	}

	body, err := json.Marshal(map[string]any{
		"Id":            job.orderID,
		"ReferenceData": job.req.Reference,
		"Status":        "Done",
		"Groups":        groups,
	})
	if err != nil {
		g.setState(job.orderID, GPTStateFailed)
		logger.Error("encoding gpt result", "error", err)
		return
	}
	g.setState(job.orderID, GPTStateDone)

	if g.dispatcher == nil || job.req.CallbackURL == "" {
		logger.Warn("gpt result has no callback destination")
		return
	}
	err = g.dispatcher.Enqueue(webhook.Delivery{
		RequestID: job.req.ID,
		URL:       job.req.CallbackURL,
		Payload:   body,
		Key:       job.req.SigningKey,
	})
	if err != nil {
		logger.Error("queueing gpt callback", "error", err)
	}
}

func (g *GPT) translate(ctx context.Context, req *Request, payload *Payload) ([]Group, error) {
	target := g.conf.ProviderLanguage(req.TargetLanguage)
	system := g.systemPrompt(payload.SourceLang, target, payload.Directives)

	out := make([]Group, 0, len(payload.Groups))
	for _, group := range payload.Groups {
		translated := Group{GroupID: group.GroupID, Items: make([]GroupItem, 0, len(group.Items))}
		for _, item := range group.Items {
			text, err := g.completer.Complete(ctx, system, item.Content)
			if err != nil {
				return nil, fmt.Errorf("translating %s/%s: %w", group.GroupID, item.ID, err)
			}
			translated.Items = append(translated.Items, GroupItem{ID: item.ID, Content: text})
		}
		out = append(out, translated)
	}
	return out, nil
}

func (g *GPT) systemPrompt(source, target string, directives map[string]map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the user's text from %s to %s. ", source, target)
	b.WriteString("The text is an HTML fragment of a web page. Keep all markup, attributes and ")
	b.WriteString("<cms-plugin> elements unchanged and translate only the human-readable text. ")
	b.WriteString("Reply with the translation and nothing else.")

	names := make([]string, 0, len(directives))
	for name := range directives {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entry, _ := directives[name][target].(map[string]any)
		text, _ := entry[DirectiveItemKey].(string)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n\nFollow these directives:\n%s", text)
	}
	return b.String()
}
