package constants

// Action is a key pair operation requested on the command line.
type Action string

const (
	// ActionUpload imports the local public key into every region.
	ActionUpload Action = "upload"
	// ActionDelete removes a named key pair from every region.
	ActionDelete Action = "delete"
	// ActionList prints the key pairs present in every region.
	ActionList Action = "list"
)

// Actions returns the closed set of supported actions, in help order.
func Actions() []Action {
	return []Action{ActionUpload, ActionDelete, ActionList}
}

// ActionNames returns the supported actions as plain strings.
func ActionNames() []string {
	names := make([]string, 0, len(Actions()))
	for _, a := range Actions() {
		names = append(names, string(a))
	}
	return names
}

// RequiresKeyName reports whether the action cannot run without a key name.
func (a Action) RequiresKeyName() bool {
	return a == ActionUpload || a == ActionDelete
}
