package rbac

// Route-level policy. The business rules inside the services still make their
// own role checks (a teacher token can never enroll, even if the route let it
// through); this table keeps the HTTP surface auditable in one place.
var RolePermissions = map[string][]string{
	"student": {
		"course:view",
		"enrollment:create",
		"enrollment:update-own",
		"enrollment:view-own",
		"submission:create",
		"submission:view-own",
		"quiz:view",
		"quiz:take",
		"quiz:view-own-results",
		"review:create",
		"review:update-own",
		"review:view",
		"progress:update-own",
	},
	"teacher": {
		"course:*",
		"module:*",
		"lesson:*",
		"assignment:*",
		"quiz:manage",
		"quiz:view",
		"quiz:view-results",
		"enrollment:view",
		"enrollment:update",
		"submission:view",
		"submission:grade",
		"review:view",
		"users:list",
	},
	"admin": {
		"*", // everything
	},
}
