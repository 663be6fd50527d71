package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rsilvagit/jobfit/internal/model"
)

const (
	telegramAPI   = "https://api.telegram.org"
	telegramLimit = 3800
)

// TelegramWriter sends postings to a Telegram chat via the Bot API.
type TelegramWriter struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

func NewTelegramWriter(token, chatID string) *TelegramWriter {
	return &TelegramWriter{
		token:   token,
		chatID:  chatID,
		baseURL: telegramAPI,
		client:  &http.Client{},
	}
}

// WithBaseURL points the writer at another Bot API host.
func (tw *TelegramWriter) WithBaseURL(u string) *TelegramWriter {
	tw.baseURL = strings.TrimRight(u, "/")
	return tw
}

func (tw *TelegramWriter) Publish(ctx context.Context, p model.JobPosting) error {
	parts := []string{formatTelegram(p)}
	for _, para := range paragraphs(p.Description) {
		parts = append(parts, escapeMarkdown(para))
	}
	for _, c := range chunk(parts, telegramLimit) {
		if err := tw.send(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func formatTelegram(p model.JobPosting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", escapeMarkdown(p.Title))
	fmt.Fprintf(&b, "Company: %s\n", escapeMarkdown(p.Company))
	fmt.Fprintf(&b, "Location: %s\n", escapeMarkdown(p.Location))
	for _, e := range p.Supplementary.Entries() {
		fmt.Fprintf(&b, "%s: %s\n", escapeMarkdown(badge(e.Key)), escapeMarkdown(e.Value))
	}
	if p.SourceAddress != "" {
		fmt.Fprintf(&b, "[View posting](%s)\n", p.SourceAddress)
	}
	b.WriteString("\n")
	return b.String()
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]",
		"(", "\\(", ")", "\\)", "~", "\\~", "`", "\\`",
		">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
		"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}",
		".", "\\.", "!", "\\!",
	)
	return replacer.Replace(s)
}

func (tw *TelegramWriter) send(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", tw.baseURL, tw.token)

	body, err := json.Marshal(map[string]string{
		"chat_id":    tw.chatID,
		"text":       text,
		"parse_mode": "MarkdownV2",
	})
	if err != nil {
		return fmt.Errorf("telegram: marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tw.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var result struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		return fmt.Errorf("telegram: API error %d: %s", resp.StatusCode, result.Description)
	}
	return nil
}
