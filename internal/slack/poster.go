// Package slack posts completed evaluation summaries to a managers channel.
// Optional: the app runs fine without it.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/calluna-vineyards/trellis/internal/evaluator"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// SetTestURL points the poster at a fake endpoint. Tests only.
func (p *Poster) SetTestURL(url string) {
	p.apiURL = url
}

// PostEvaluation sends a completed session's verdict to the channel.
func (p *Poster) PostEvaluation(ctx context.Context, scenarioTitle string, eval *evaluator.Evaluation, avgScore int) error {
	text := FormatEvaluation(scenarioTitle, eval, avgScore)

	body, err := json.Marshal(map[string]any{
		"channel": p.channel,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read slack response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return fmt.Errorf("slack error: %s", slackResp.Error)
	}

	p.logger.Info("evaluation posted to slack", "channel", p.channel, "score", eval.Score)
	return nil
}

// FormatEvaluation renders the Slack message body.
func FormatEvaluation(scenarioTitle string, eval *evaluator.Evaluation, avgScore int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Roleplay complete: %s*\n", scenarioTitle)
	fmt.Fprintf(&b, "Trainer score: %d%% | Automated turn average: %d/100\n", eval.Score, avgScore)

	if len(eval.Strengths) > 0 {
		b.WriteString("\n*Strengths*\n")
		for _, s := range eval.Strengths {
			b.WriteString("• " + s + "\n")
		}
	}
	if len(eval.Issues) > 0 {
		b.WriteString("\n*Issues*\n")
		for _, s := range eval.Issues {
			b.WriteString("• " + s + "\n")
		}
	}
	if eval.Feedback != "" {
		b.WriteString("\n" + eval.Feedback + "\n")
	}
	return b.String()
}
