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

const discordLimit = 1900

// DiscordWriter sends postings to a Discord channel via Webhook.
type DiscordWriter struct {
	webhookURL string
	client     *http.Client
}

func NewDiscordWriter(webhookURL string) *DiscordWriter {
	return &DiscordWriter{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

func (dw *DiscordWriter) Publish(ctx context.Context, p model.JobPosting) error {
	parts := []string{formatDiscord(p)}
	for _, para := range paragraphs(p.Description) {
		parts = append(parts, "> "+para)
	}
	for _, c := range chunk(parts, discordLimit) {
		if err := dw.send(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func formatDiscord(p model.JobPosting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", p.Title)
	fmt.Fprintf(&b, "> Company: %s\n", p.Company)
	fmt.Fprintf(&b, "> Location: %s\n", p.Location)
	for _, e := range p.Supplementary.Entries() {
		fmt.Fprintf(&b, "> %s: %s\n", badge(e.Key), e.Value)
	}
	if p.SourceAddress != "" {
		fmt.Fprintf(&b, "> [View posting](%s)\n", p.SourceAddress)
	}
	b.WriteString("\n")
	return b.String()
}

type discordPayload struct {
	Content string `json:"content"`
}

func (dw *DiscordWriter) send(ctx context.Context, text string) error {
	payload, err := json.Marshal(discordPayload{Content: text})
	if err != nil {
		return fmt.Errorf("discord: marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dw.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("discord: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := dw.client.Do(req)
	if err != nil {
		return fmt.Errorf("discord: sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var result struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		return fmt.Errorf("discord: API error %d: %s", resp.StatusCode, result.Message)
	}
	return nil
}
