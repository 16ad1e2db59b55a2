package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/random-walk-note/internal/types"
)

// ribbonPrompt is the quick-access entry offered while the ribbon setting is on.
const ribbonPrompt = "random-walk-note"

type (
	// WalkInput contains parameters for opening a random note.
	WalkInput struct {
		Tag     string `json:"tag,omitempty" jsonschema:"Tag filter for this call only (default: saved setting)"`
		Exclude string `json:"exclude,omitempty" jsonschema:"Comma-separated excluded folders for this call only (default: saved setting)"`
	}

	// WalkOutput contains the note that was opened.
	WalkOutput struct {
		Note        types.Note `json:"note"`
		OpenURI     string     `json:"openUri"`
		ObsidianURI string     `json:"obsidianUri"`
		Shown       int        `json:"shown"`
		Notices     []string   `json:"notices,omitempty"`
	}

	// SettingsInput contains optional settings updates. Omitted fields are
	// left unchanged.
	SettingsInput struct {
		OpenInNewLeaf    *bool   `json:"openInNewLeaf,omitempty" jsonschema:"Open notes in a new tab"`
		EnableRibbonIcon *bool   `json:"enableRibbonIcon,omitempty" jsonschema:"Offer the random-walk-note prompt"`
		ExcludedFolders  *string `json:"excludedFolders,omitempty" jsonschema:"Comma-separated folder names to skip"`
		SelectedTag      *string `json:"selectedTag,omitempty" jsonschema:"Only open notes with this tag (empty string: no filter)"`
	}

	// SettingsOutput contains the saved settings.
	SettingsOutput struct {
		OpenInNewLeaf    bool   `json:"openInNewLeaf"`
		EnableRibbonIcon bool   `json:"enableRibbonIcon"`
		ExcludedFolders  string `json:"excludedFolders"`
		SelectedTag      string `json:"selectedTag"`
	}

	// TagsInput contains parameters for listing all tags.
	TagsInput struct{}

	// TagsOutput contains all unique tags in the vault with counts.
	TagsOutput struct {
		Tags       []types.TagInfo `json:"tags"`
		TotalTags  int             `json:"totalTags"`
		TotalNotes int             `json:"totalNotes"`
	}

	// ResetInput takes no parameters.
	ResetInput struct{}

	// ResetOutput reports the cleared review cycle.
	ResetOutput struct {
		Success bool `json:"success"`
		Cleared int  `json:"cleared"`
	}
)

func (s *walkServer) register(server *mcp.Server) {
	s.server = server

	mcp.AddTool(server, &mcp.Tool{
		Name:        "random_walk",
		Description: "Open a random note from the vault in Obsidian. Notes already shown are avoided until every candidate has been opened once, then the review cycle starts over.",
	}, s.handleWalk)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "settings",
		Description: "Read the random walk settings. Any field given is updated and saved first.",
	}, s.handleSettings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tags",
		Description: "List all unique tags across the vault with note counts, for choosing selectedTag.",
	}, s.handleTags)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_cycle",
		Description: "Forget which notes were shown and start a new review cycle.",
	}, s.handleReset)

	s.app.settings.OnRibbonChange(s.refreshRibbon)
	s.refreshRibbon(s.app.settings.Current().EnableRibbonIcon)
}

func (s *walkServer) refreshRibbon(enabled bool) {
	s.server.RemovePrompts(ribbonPrompt)
	if enabled {
		s.server.AddPrompt(&mcp.Prompt{
			Name:        ribbonPrompt,
			Description: "Open a random note from the vault",
		}, s.handlePrompt)
	}
}
