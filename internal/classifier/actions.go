package classifier

// highRiskActions enumerates the IAM actions that escalate severity to high:
// policy attach/detach/put/delete on users and roles, permissions-boundary
// changes, credential material changes, and user lifecycle operations.
var highRiskActions = map[string]bool{
	// Policy manipulation
	"AttachUserPolicy": true,
	"DetachUserPolicy": true,
	"AttachRolePolicy": true,
	"DetachRolePolicy": true,
	"PutUserPolicy":    true,
	"DeleteUserPolicy": true,
	"PutRolePolicy":    true,
	"DeleteRolePolicy": true,

	// Permissions boundaries
	"PutUserPermissionsBoundary":    true,
	"DeleteUserPermissionsBoundary": true,
	"PutRolePermissionsBoundary":    true,
	"DeleteRolePermissionsBoundary": true,

	// Credential material
	"CreateAccessKey":                true,
	"DeleteAccessKey":                true,
	"CreateLoginProfile":             true,
	"UpdateLoginProfile":             true,
	"ResetServiceSpecificCredential": true,

	// User lifecycle
	"CreateUser": true,
	"DeleteUser": true,
	"UpdateUser": true,
}
