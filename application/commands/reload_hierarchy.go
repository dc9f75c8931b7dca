package commands

// ReloadHierarchyCommand re-fetches the full employee collection from the
// remote source, replacing the in-memory forest
type ReloadHierarchyCommand struct{}

// Validate validates the command
func (c ReloadHierarchyCommand) Validate() error {
	return nil
}
