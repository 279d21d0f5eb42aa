// Package ui holds the collaborators the session guard and the browser talk
// to, and their terminal implementations: a colored notifier, a y/N
// confirmer, the system clipboard and a spinner.
package ui

// Notifier shows transient messages. Calls never block on the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(question string) bool
}

// Clipboard receives copied text.
type Clipboard interface {
	Write(text string) error
}

// Navigator switches the active screen.
type Navigator interface {
	Navigate(path string)
}

// Indicator is a neutral "working" signal shown while something loads.
type Indicator interface {
	Start(label string)
	Stop()
}
