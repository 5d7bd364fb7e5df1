// Package safety classifies tool invocations into permission levels for
// hands-free mode.
package safety

//go:generate enumer -type=PermissionLevel -trimprefix=PermissionLevel -transform=lower -json -text

// PermissionLevel is the outcome of policy evaluation.
//
// Caution is ordered Block > Validate > Allow. The zero value is Block so an
// uninitialised level fails closed.
type PermissionLevel int

const (
	// PermissionLevelBlock rejects the tool invocation.
	PermissionLevelBlock PermissionLevel = iota

	// PermissionLevelValidate defers to the normal human-confirmation flow.
	PermissionLevelValidate

	// PermissionLevelAllow auto-approves the tool invocation.
	PermissionLevelAllow
)
