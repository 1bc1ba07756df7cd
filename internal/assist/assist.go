// Package assist answers questions about a user's notes with the Gemini API.
package assist

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/Xek-YP/ya-note/internal/models"
)

const model = "gemini-2.5-flash"

// AnalyzeNotes sends the given notes and a question to the Gemini API and
// returns the response. Only the notes passed in are disclosed, so callers
// must pre-filter to the requesting user's own notes.
func AnalyzeNotes(ctx context.Context, notes []models.Note, question string, history []models.ChatMessage) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var notesContext strings.Builder
	notesContext.WriteString("You are a helpful assistant analyzing a user's personal notes. ")
	notesContext.WriteString("Here are the notes:\n\n")
	for _, note := range notes {
		notesContext.WriteString(fmt.Sprintf("--- %s ---\n%s\n\n", note.Title, note.Text))
	}

	var chatHistory []*genai.Content
	for _, msg := range history {
		role := "user"
		if msg.Role == "model" {
			role = "model"
		}
		chatHistory = append(chatHistory, &genai.Content{
			Role: role,
			Parts: []*genai.Part{
				{Text: msg.Content},
			},
		})
	}

	chat, err := client.Chats.Create(ctx, model, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: notesContext.String()},
			},
		},
	}, chatHistory)
	if err != nil {
		return "", fmt.Errorf("failed to create chat session: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: question})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	if part.Text != "" {
		return part.Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}
