package ui

import "github.com/justinpbarnett/coupontop/internal/ui/panels"

// Messages the background producers send. They are defined in panels,
// which handles them.

// StreamUpdatedMsg is sent when new live log lines are in the history.
type StreamUpdatedMsg = panels.StreamUpdatedMsg

// StreamStateMsg is sent when the live log connection changes state.
type StreamStateMsg = panels.StreamStateMsg

// StatusMsg carries one /status poll result.
type StatusMsg = panels.StatusMsg
