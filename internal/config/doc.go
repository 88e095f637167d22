// Package config defines the format-agnostic data model shared by every
// stage of the generator: the genome (which modules to apply to a project),
// module configurations and blueprints (what each module contributes), and
// the collaborator interfaces that supply them.
package config
