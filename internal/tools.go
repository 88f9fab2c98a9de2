package internal

import (
	"context"
	"encoding/json"
	"fmt"

	"charm.land/fantasy"
)

const (
	EchoPrefix = "You said: "

	defaultToolLimit = 10
)

// Echo returns text behind a fixed label.
func Echo(text string) string {
	return EchoPrefix + text
}

type setRepositoryInput struct {
	Path string `json:"path" description:"Absolute path to a local Git repository"`
}

type listCommitsInput struct {
	Count int `json:"count,omitempty" description:"How many commits to retrieve (default 10)"`
}

type findCommitsInput struct {
	Keyword string `json:"keyword" description:"Keyword to search for in commit messages"`
	Limit   int    `json:"limit,omitempty" description:"Max results (default 10)"`
}

type compareCommitsInput struct {
	Base string `json:"base" description:"Older commit SHA or ref"`
	Head string `json:"head" description:"Newer commit SHA or ref"`
}

type commitAllInput struct {
	Message string `json:"message" description:"Commit message"`
	Author  string `json:"author,omitempty" description:"Committer name"`
	Email   string `json:"email,omitempty" description:"Committer e-mail"`
}

type pushInput struct {
	Branch string `json:"branch,omitempty" description:"Branch to push (defaults to current)"`
}

type setVersionInput struct {
	Semver string `json:"semver" description:"Version in MAJOR.MINOR.PATCH format"`
}

type echoInput struct {
	Text string `json:"text" description:"Text to echo"`
}

type noInput struct{}

// NewTools exposes every session operation as a function the model can call.
// Operation failures come back as error responses so the model can react to
// them instead of aborting the run.
func NewTools(s *Session) []fantasy.AgentTool {
	return []fantasy.AgentTool{
		fantasy.NewAgentTool("set_repository", "Set the working repository path",
			func(ctx context.Context, in setRepositoryInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				if err := s.SetRepository(ctx, in.Path); err != nil {
					return toolError(err), nil
				}
				return fantasy.NewTextResponse(fmt.Sprintf("Repository set to %s", in.Path)), nil
			}),

		fantasy.NewAgentTool("list_commits", "Get latest commits as JSON",
			func(ctx context.Context, in listCommitsInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				commits, err := s.ListCommits(ctx, orDefault(in.Count))
				if err != nil {
					return toolError(err), nil
				}
				return jsonResponse(commits)
			}),

		fantasy.NewAgentTool("find_commits", "Find commits whose message contains a keyword",
			func(ctx context.Context, in findCommitsInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				commits, err := s.FindCommits(ctx, in.Keyword, orDefault(in.Limit))
				if err != nil {
					return toolError(err), nil
				}
				return jsonResponse(commits)
			}),

		fantasy.NewAgentTool("compare_commits", "Show diff stats (files, added and deleted lines) between two commits",
			func(ctx context.Context, in compareCommitsInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				summary, err := s.CompareCommits(ctx, in.Base, in.Head)
				if err != nil {
					return toolError(err), nil
				}
				return jsonResponse(summary)
			}),

		fantasy.NewAgentTool("pending_changes", "Show diff stats of uncommitted changes in the working tree",
			func(ctx context.Context, _ noInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				summary, err := s.PendingChanges(ctx)
				if err != nil {
					return toolError(err), nil
				}
				return jsonResponse(summary)
			}),

		fantasy.NewAgentTool("commit_all", "Stage all changes and create a commit",
			func(ctx context.Context, in commitAllInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				commit, err := s.CommitAll(ctx, in.Message, in.Author, in.Email)
				if err != nil {
					return toolError(err), nil
				}
				return fantasy.NewTextResponse(fmt.Sprintf("Created commit %s", commit.SHA)), nil
			}),

		fantasy.NewAgentTool("pull", "Pull latest changes from the remote",
			func(ctx context.Context, _ noInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				status, err := s.Pull(ctx)
				if err != nil {
					return toolError(err), nil
				}
				return fantasy.NewTextResponse(fmt.Sprintf("Pull result: %s", status)), nil
			}),

		fantasy.NewAgentTool("push", "Push a branch (default: current) to the remote",
			func(ctx context.Context, in pushInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				branch, err := s.Push(ctx, in.Branch)
				if err != nil {
					return toolError(err), nil
				}
				return fantasy.NewTextResponse(fmt.Sprintf("Pushed %s to %s", branch, s.Remote())), nil
			}),

		fantasy.NewAgentTool("get_current_version", "Retrieve the currently stored version",
			func(ctx context.Context, _ noInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				version, err := s.CurrentVersion(ctx)
				if err != nil {
					return toolError(err), nil
				}
				return fantasy.NewTextResponse(version), nil
			}),

		fantasy.NewAgentTool("bump_patch_version", "Increment the patch version and return the new version",
			func(ctx context.Context, _ noInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				version, err := s.BumpPatchVersion(ctx)
				if err != nil {
					return toolError(err), nil
				}
				return fantasy.NewTextResponse(version), nil
			}),

		fantasy.NewAgentTool("set_version", "Force-set the version to MAJOR.MINOR.PATCH",
			func(ctx context.Context, in setVersionInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				if err := s.SetVersion(ctx, in.Semver); err != nil {
					return toolError(err), nil
				}
				return fantasy.NewTextResponse(fmt.Sprintf("Version set to %s", in.Semver)), nil
			}),

		fantasy.NewAgentTool("echo", "Echoes back whatever you send in",
			func(_ context.Context, in echoInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
				return fantasy.NewTextResponse(Echo(in.Text)), nil
			}),
	}
}

// FindTool looks a tool up by name.
func FindTool(tools []fantasy.AgentTool, name string) (fantasy.AgentTool, bool) {
	for _, t := range tools {
		if t.Info().Name == name {
			return t, true
		}
	}
	return nil, false
}

// CallTool runs a tool directly with JSON arguments, outside of any model turn.
func CallTool(ctx context.Context, tools []fantasy.AgentTool, name, args string) (fantasy.ToolResponse, error) {
	tool, ok := FindTool(tools, name)
	if !ok {
		return fantasy.ToolResponse{}, fmt.Errorf("%w: tool %q", ErrNotFound, name)
	}
	if args == "" {
		args = "{}"
	}

	return tool.Run(ctx, fantasy.ToolCall{
		ID:    "call-" + name,
		Name:  name,
		Input: args,
	})
}

func jsonResponse(v any) (fantasy.ToolResponse, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return fantasy.ToolResponse{}, fmt.Errorf("encode result: %w", err)
	}
	return fantasy.NewTextResponse(string(data)), nil
}

func toolError(err error) fantasy.ToolResponse {
	return fantasy.NewTextErrorResponse(err.Error())
}

func orDefault(n int) int {
	if n == 0 {
		return defaultToolLimit
	}
	return n
}
