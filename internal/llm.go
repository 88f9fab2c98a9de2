package internal

import (
	"context"

	"charm.land/fantasy"
)

type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// ChatRequest is one agent run: the model may call any of Tools until it
// produces a final answer. OnText, when set, receives streamed text.
type ChatRequest struct {
	System string
	Prompt string
	Tools  []fantasy.AgentTool
	OnText func(text string)
}

const SystemPrompt = `You are a release assistant operating on a local Git repository.
Call set_repository before any other git or version tool unless the user says
a repository is already set. Commit SHAs returned by list_commits and
find_commits are abbreviated and can be passed to compare_commits as is.
Versions are MAJOR.MINOR.PATCH and live in the repository's version file.
Report tool errors to the user instead of guessing.`
