package game

import "fmt"

// State is the top-level screen the game is showing
type State int

const (
	StateMainMenu State = iota
	StateLevelSelect
	StatePlaying
	StateLevelComplete
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateLevelSelect:
		return "level_select"
	case StatePlaying:
		return "playing"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Menu option labels
const (
	optionStart       = "Start"
	optionLevelSelect = "Level Select"
	optionQuit        = "Quit"
	optionNextLevel   = "Next Level"
	optionRetry       = "Retry"
	optionMainMenu    = "Main Menu"
	optionBack        = "Back"
)

var mainMenuOptions = []string{optionStart, optionLevelSelect, optionQuit}

// Menu is a vertical list with a wrapping cursor
type Menu struct {
	Title     string
	Subtitle  string
	Options   []string
	Selection int
}

// NewMenu creates a menu with the first option selected
func NewMenu(title string, options ...string) *Menu {
	return &Menu{Title: title, Options: options}
}

// Next moves the cursor down, wrapping to the top
func (m *Menu) Next() {
	if len(m.Options) == 0 {
		return
	}
	m.Selection = (m.Selection + 1) % len(m.Options)
}

// Prev moves the cursor up, wrapping to the bottom
func (m *Menu) Prev() {
	if len(m.Options) == 0 {
		return
	}
	m.Selection = (m.Selection - 1 + len(m.Options)) % len(m.Options)
}

// Selected returns the highlighted option, or "" for an empty menu
func (m *Menu) Selected() string {
	if len(m.Options) == 0 {
		return ""
	}
	return m.Options[m.Selection]
}

// Navigate applies up/down input and reports whether the cursor moved
func (m *Menu) Navigate(in InputState) bool {
	switch {
	case in.MenuUp && !in.MenuDown:
		m.Prev()
		return true
	case in.MenuDown && !in.MenuUp:
		m.Next()
		return true
	}
	return false
}
