//go:build tools

// Package tools pins the code generators used by go:generate (enumer for
// the EventType and PermissionLevel enums, mockgen for the injector and
// command runner mocks) so their versions are tracked in go.mod.
package tools

import (
	_ "github.com/dmarkham/enumer"
	_ "go.uber.org/mock/mockgen"
)
