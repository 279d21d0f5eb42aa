// Package browser is the project/secret state machine behind the dashboard.
//
// States move NoProjectsLoaded → ProjectsLoaded → ProjectSelected →
// SecretsLoaded, with loading sub-states while a fetch is in flight. A failed
// operation reports through the Notifier and leaves the last stable state in
// place.
//
// Every secrets fetch is tagged with the selection generation it was issued
// under. A response that arrives after the selection moved on is dropped, so
// rapid reselection never shows one project's secrets under another. After
// Close every late response is dropped as well.
//
// Creating a secret re-fetches the list because the server may normalize
// what it stores; deleting one filters it out locally.
package browser
