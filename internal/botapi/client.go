// ABOUTME: Typed client methods for the bot and conversation endpoints
// ABOUTME: Paths and verbs follow the backend's REST routes

package botapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/botdeck/botdeck/internal/api"
)

// Client wraps the authenticated pipeline with typed resource calls.
type Client struct {
	api *api.Client
}

// NewClient returns a resource client over an authenticated pipeline.
func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// ListBots returns all bots owned by the current user.
func (c *Client) ListBots(ctx context.Context) ([]Bot, error) {
	var bots []Bot
	if err := c.api.Get(ctx, "/bots", &bots); err != nil {
		return nil, err
	}
	return bots, nil
}

// GetBot fetches one bot by id.
func (c *Client) GetBot(ctx context.Context, id string) (*Bot, error) {
	var bot Bot
	if err := c.api.Get(ctx, "/bots/"+url.PathEscape(id), &bot); err != nil {
		return nil, err
	}
	return &bot, nil
}

// CreateBot registers a new bot integration.
func (c *Client) CreateBot(ctx context.Context, in BotCreate) (*Bot, error) {
	var bot Bot
	if err := c.api.Post(ctx, "/bots", in, &bot); err != nil {
		return nil, err
	}
	return &bot, nil
}

// UpdateBot applies a partial update and returns the updated bot.
func (c *Client) UpdateBot(ctx context.Context, id string, in BotUpdate) (*Bot, error) {
	var bot Bot
	if err := c.api.Patch(ctx, "/bots/"+url.PathEscape(id), in, &bot); err != nil {
		return nil, err
	}
	return &bot, nil
}

// DeleteBot removes a bot and its conversations.
func (c *Client) DeleteBot(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/bots/"+url.PathEscape(id))
}

// BotStatus reports the runtime state of a bot's bridge.
func (c *Client) BotStatus(ctx context.Context, id string) (*BotStatus, error) {
	var status BotStatus
	if err := c.api.Get(ctx, "/bots/"+url.PathEscape(id)+"/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartBot launches the bot's platform bridge.
func (c *Client) StartBot(ctx context.Context, id string) error {
	return c.api.Post(ctx, "/bots/"+url.PathEscape(id)+"/start", nil, nil)
}

// StopBot stops the bot's platform bridge.
func (c *Client) StopBot(ctx context.Context, id string) error {
	return c.api.Post(ctx, "/bots/"+url.PathEscape(id)+"/stop", nil, nil)
}

// RestartBot stops then starts the bot's platform bridge.
func (c *Client) RestartBot(ctx context.Context, id string) error {
	return c.api.Post(ctx, "/bots/"+url.PathEscape(id)+"/restart", nil, nil)
}

// HealthCheck probes the bot's LLM endpoint on demand.
func (c *Client) HealthCheck(ctx context.Context, id string) (*HealthCheckResult, error) {
	var result HealthCheckResult
	if err := c.api.Post(ctx, "/bots/"+url.PathEscape(id)+"/health-check", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListConversations returns conversations, optionally filtered to one bot.
func (c *Client) ListConversations(ctx context.Context, botID string) ([]Conversation, error) {
	path := "/conversations"
	if botID != "" {
		path = fmt.Sprintf("/conversations?bot_id=%s", url.QueryEscape(botID))
	}
	var convs []Conversation
	if err := c.api.Get(ctx, path, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// GetConversation fetches one conversation by id.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	if err := c.api.Get(ctx, "/conversations/"+url.PathEscape(id), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Messages returns the message history of a conversation, oldest first.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	var msgs []Message
	if err := c.api.Get(ctx, "/conversations/"+url.PathEscape(conversationID)+"/messages", &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/conversations/"+url.PathEscape(id))
}
