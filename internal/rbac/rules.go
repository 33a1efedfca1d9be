package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"member": {
		"project:view",
		"task:view",
		"task:update",
		"evaluation:view",
		"evaluation:submit",
	},
	"manager": {
		"project:*",
		"task:*",
		"evaluation:*",
		"users:list",
	},
	"admin": {
		"*", // everything
	},
}
