// Package declare loads chain declarations (name plus ordered step ids)
// from YAML or JSON and binds them to chain services at startup.
package declare
