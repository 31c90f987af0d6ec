package model

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Operation string
}

// DisplayMode selects what the terminal shows
type DisplayMode int

const (
	ModeNormal DisplayMode = iota
	ModeHelp
	ModeLoading
)

// InteractionState represents UI-only state that is not part of playback
type InteractionState struct {
	ShowHelp       bool
	IsLoading      bool
	LoadingMessage string
	StatusMessage  string // transient message, e.g. after a config reload
}

// Mode returns the display mode implied by the state
func (s InteractionState) Mode() DisplayMode {
	if s.ShowHelp {
		return ModeHelp
	}
	if s.IsLoading {
		return ModeLoading
	}
	return ModeNormal
}
