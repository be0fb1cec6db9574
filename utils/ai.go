package utils

import (
    "context"
    "strings"

    "github.com/google/generative-ai-go/genai"
    "google.golang.org/api/option"
)

type AIConfig struct {
    APIKey   string
    GenModel string
}

func NewAIClient(ctx context.Context, cfg AIConfig) (*genai.Client, error) {
    return genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
}

func GenerateText(ctx context.Context, client *genai.Client, model string, parts ...genai.Part) (string, error) {
    m := client.GenerativeModel(model)
    resp, err := m.GenerateContent(ctx, parts...)
    if err != nil {
        return "", err
    }
    var b strings.Builder
    if resp != nil {
        for _, c := range resp.Candidates {
            if c == nil || c.Content == nil { continue }
            for _, p := range c.Content.Parts {
                if t, ok := p.(genai.Text); ok {
                    b.WriteString(string(t))
                }
            }
        }
    }
    return strings.TrimSpace(b.String()), nil
}
