package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/random-walk-note/internal/notice"
	"github.com/taigrr/random-walk-note/internal/picker"
	"github.com/taigrr/random-walk-note/internal/settings"
	"github.com/taigrr/random-walk-note/internal/types"
	"github.com/taigrr/random-walk-note/internal/uri"
)

// walkServer serves one picker for the lifetime of the MCP session.
type walkServer struct {
	app     *app
	server  *mcp.Server
	picker  *picker.Picker
	notices *notice.Recorder

	// walkMu keeps the notices of one walk together.
	walkMu sync.Mutex
}

func newWalkServer(a *app) *walkServer {
	rec := notice.NewRecorder()
	return &walkServer{
		app:     a,
		picker:  a.newPicker(rec),
		notices: rec,
	}
}

// walk opens the next note and collects the notices it produced.
func (s *walkServer) walk(ctx context.Context, st settings.Settings) (WalkOutput, error) {
	s.walkMu.Lock()
	defer s.walkMu.Unlock()

	note, err := s.picker.OpenRandomNote(ctx, st)
	notices := s.notices.Drain()
	if err != nil {
		if len(notices) > 0 {
			return WalkOutput{Notices: notices}, fmt.Errorf("%w (%s)", err, strings.Join(notices, "; "))
		}
		return WalkOutput{}, err
	}

	return WalkOutput{
		Note:        note,
		OpenURI:     uri.OpenURI(s.app.vault.Name(), note.Basename, st.OpenInNewLeaf),
		ObsidianURI: uri.GenerateObsidianURI(s.app.vault.Path(), note.Path),
		Shown:       s.picker.ShownCount(),
		Notices:     notices,
	}, nil
}

func handleError[T any](out T, err error) (*mcp.CallToolResult, T, error) {
	return &mcp.CallToolResult{IsError: true}, out, err
}

func (s *walkServer) handleWalk(ctx context.Context, req *mcp.CallToolRequest, input WalkInput) (*mcp.CallToolResult, WalkOutput, error) {
	st := s.app.settings.Current()
	if tag := strings.TrimSpace(input.Tag); tag != "" {
		st.SelectedTag = tag
	}
	if exclude := strings.TrimSpace(input.Exclude); exclude != "" {
		st.ExcludedFolders = exclude
	}

	out, err := s.walk(ctx, st)
	if err != nil {
		return handleError(out, err)
	}
	return nil, out, nil
}

func (s *walkServer) handleSettings(ctx context.Context, req *mcp.CallToolRequest, input SettingsInput) (*mcp.CallToolResult, SettingsOutput, error) {
	changed := input.OpenInNewLeaf != nil || input.EnableRibbonIcon != nil ||
		input.ExcludedFolders != nil || input.SelectedTag != nil

	if changed {
		err := s.app.settings.Update(func(st *settings.Settings) {
			if input.OpenInNewLeaf != nil {
				st.OpenInNewLeaf = *input.OpenInNewLeaf
			}
			if input.EnableRibbonIcon != nil {
				st.EnableRibbonIcon = *input.EnableRibbonIcon
			}
			if input.ExcludedFolders != nil {
				st.ExcludedFolders = *input.ExcludedFolders
			}
			if input.SelectedTag != nil {
				st.SelectedTag = strings.TrimSpace(*input.SelectedTag)
			}
		})
		if err != nil {
			return handleError(SettingsOutput{}, err)
		}
	}

	st := s.app.settings.Current()
	return nil, SettingsOutput{
		OpenInNewLeaf:    st.OpenInNewLeaf,
		EnableRibbonIcon: st.EnableRibbonIcon,
		ExcludedFolders:  st.ExcludedFolders,
		SelectedTag:      st.SelectedTag,
	}, nil
}

func (s *walkServer) handleTags(ctx context.Context, req *mcp.CallToolRequest, input TagsInput) (*mcp.CallToolResult, TagsOutput, error) {
	infos, total, err := s.app.tags.All(ctx)
	if err != nil {
		return handleError(TagsOutput{}, err)
	}
	if infos == nil {
		infos = []types.TagInfo{}
	}
	return nil, TagsOutput{
		Tags:       infos,
		TotalTags:  len(infos),
		TotalNotes: total,
	}, nil
}

func (s *walkServer) handleReset(ctx context.Context, req *mcp.CallToolRequest, input ResetInput) (*mcp.CallToolResult, ResetOutput, error) {
	cleared := s.picker.ShownCount()
	s.picker.Reset()
	return nil, ResetOutput{Success: true, Cleared: cleared}, nil
}

func (s *walkServer) handlePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	out, err := s.walk(ctx, s.app.settings.Current())
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Opened %s (%s). %d notes shown in this review cycle.",
		out.Note.Path, out.OpenURI, out.Shown)
	return &mcp.GetPromptResult{
		Description: "Random note",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}, nil
}
