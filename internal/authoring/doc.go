/*
Package authoring implements the question authoring workflow: a form whose
fields depend on the selected question type, a session list of authored
questions that is backed up on every change, and short-lived notifications
reporting the outcome of each action.

The Controller owns the question list. Front ends (see the tui package) only
forward user events to it and render its state.
*/
package authoring
