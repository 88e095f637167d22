// Package hcl_adapter provides the concrete HCL implementation for loading
// genome files and module manifests. It is responsible for all file parsing
// and HCL-to-model translation; nothing outside this package touches HCL
// syntax trees directly.
package hcl_adapter
