// ABOUTME: Resource shapes for bots, conversations, and messages
// ABOUTME: Field names and tags mirror the backend's schemas

package botapi

import "time"

// Bot is a configured bot integration: an LLM backend endpoint bridged to a
// messaging platform.
type Bot struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	DifyEndpoint        string     `json:"dify_endpoint"`
	DifyType            string     `json:"dify_type"`
	ResponseMode        string     `json:"response_mode"`
	MaxTokens           int        `json:"max_tokens"`
	Temperature         float64    `json:"temperature"`
	AutoGenerateTitle   bool       `json:"auto_generate_title"`
	EnableFileUpload    bool       `json:"enable_file_upload"`
	IsActive            bool       `json:"is_active"`
	IsTelegramConnected bool       `json:"is_telegram_connected"`
	TelegramBotUsername string     `json:"telegram_bot_username,omitempty"`
	LastHealthCheck     *time.Time `json:"last_health_check,omitempty"`
	HealthStatus        string     `json:"health_status,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// BotCreate is the payload for creating a bot. Secrets appear only here;
// the backend never echoes them back.
type BotCreate struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	DifyEndpoint      string  `json:"dify_endpoint"`
	DifyAPIKey        string  `json:"dify_api_key"`
	DifyType          string  `json:"dify_type,omitempty"`
	ResponseMode      string  `json:"response_mode,omitempty"`
	MaxTokens         int     `json:"max_tokens,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`
	AutoGenerateTitle bool    `json:"auto_generate_title,omitempty"`
	EnableFileUpload  bool    `json:"enable_file_upload,omitempty"`
	TelegramBotToken  string  `json:"telegram_bot_token,omitempty"`
}

// BotUpdate is a partial update; nil fields are left unchanged.
type BotUpdate struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	DifyEndpoint      *string  `json:"dify_endpoint,omitempty"`
	DifyAPIKey        *string  `json:"dify_api_key,omitempty"`
	ResponseMode      *string  `json:"response_mode,omitempty"`
	MaxTokens         *int     `json:"max_tokens,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty"`
	AutoGenerateTitle *bool    `json:"auto_generate_title,omitempty"`
	EnableFileUpload  *bool    `json:"enable_file_upload,omitempty"`
	TelegramBotToken  *string  `json:"telegram_bot_token,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}

// BotStatus is the runtime view of a bot's bridge process.
type BotStatus struct {
	BotID        string     `json:"bot_id"`
	Running      bool       `json:"running"`
	HealthStatus string     `json:"health_status,omitempty"`
	LastCheck    *time.Time `json:"last_check,omitempty"`
	Detail       string     `json:"detail,omitempty"`
}

// HealthCheckResult is returned by an on-demand health probe.
type HealthCheckResult struct {
	BotID     string    `json:"bot_id"`
	Healthy   bool      `json:"healthy"`
	Latency   float64   `json:"latency_ms,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Conversation is one chat thread between a platform user and a bot.
type Conversation struct {
	ID               string     `json:"id"`
	BotID            string     `json:"bot_id"`
	TelegramChatID   string     `json:"telegram_chat_id,omitempty"`
	TelegramUsername string     `json:"telegram_username,omitempty"`
	Title            string     `json:"title,omitempty"`
	MessageCount     int        `json:"message_count"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Message is a single turn within a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	TokensUsed     int       `json:"tokens_used,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
