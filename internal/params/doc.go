// Package params is the configuration collaborator of the engine. It merges
// a module's genome parameters over its manifest defaults, builds the
// expression-evaluation context, renders action content, and prunes actions
// whose conditions do not hold for this project.
package params
