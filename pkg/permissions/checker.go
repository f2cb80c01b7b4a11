// Package permissions provides utilities for checking JSONB array permissions
// against required permissions with support for wildcards.
//
// Permission Format:
//   - "*" - Full access (all permissions)
//   - "resource.*" - All actions on a resource (e.g., "inventory.*")
//   - "resource.action" - Specific action (e.g., "inventory.read")
//   - "resource.subresource.action" - Nested permission (e.g., "staff.documents.upload")
package permissions

import (
	"strings"
)

// HasPermission checks if the user's permissions include the required permission.
// Supports wildcard matching:
//   - "*" matches everything
//   - "inventory.*" matches "inventory.read", "inventory.write", etc.
//   - Exact match for specific permissions
func HasPermission(userPerms []string, required string) bool {
	if required == "" {
		return true // No permission required
	}

	for _, p := range userPerms {
		if p == "*" {
			return true // Full admin access
		}
		if p == required {
			return true // Exact match
		}
		// Check wildcard patterns like "inventory.*"
		if strings.HasSuffix(p, ".*") {
			prefix := strings.TrimSuffix(p, ".*")
			if strings.HasPrefix(required, prefix+".") {
				return true
			}
		}
	}
	return false
}

// HasAnyPermission checks if the user has any of the required permissions.
func HasAnyPermission(userPerms []string, required []string) bool {
	for _, req := range required {
		if HasPermission(userPerms, req) {
			return true
		}
	}
	return false
}

// HasAllPermissions checks if the user has all of the required permissions.
func HasAllPermissions(userPerms []string, required []string) bool {
	for _, req := range required {
		if !HasPermission(userPerms, req) {
			return false
		}
	}
	return true
}

// ExpandWildcard expands a wildcard permission pattern to check if it covers
// a set of specific permissions. Returns the list of permissions that would be covered.
func ExpandWildcard(pattern string, allKnownPerms []string) []string {
	if pattern == "*" {
		return allKnownPerms
	}

	if !strings.HasSuffix(pattern, ".*") {
		// Not a wildcard, return as-is if it exists
		for _, p := range allKnownPerms {
			if p == pattern {
				return []string{pattern}
			}
		}
		return nil
	}

	prefix := strings.TrimSuffix(pattern, ".*")
	var matches []string
	for _, p := range allKnownPerms {
		if strings.HasPrefix(p, prefix+".") {
			matches = append(matches, p)
		}
	}
	return matches
}

// FilterByPrefix returns all permissions that match a given prefix.
// Useful for getting all permissions in a category (e.g., "inventory").
func FilterByPrefix(perms []string, prefix string) []string {
	var matches []string
	for _, p := range perms {
		if strings.HasPrefix(p, prefix+".") || p == prefix {
			matches = append(matches, p)
		}
	}
	return matches
}

// MergePermissions merges multiple permission sets, removing duplicates.
// Useful for combining role permissions with permission overrides.
func MergePermissions(sets ...[]string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, set := range sets {
		for _, p := range set {
			if !seen[p] {
				seen[p] = true
				result = append(result, p)
			}
		}
	}

	return result
}

// RemovePermissions removes specific permissions from a set.
// Useful for applying permission revocations.
func RemovePermissions(perms []string, toRemove []string) []string {
	removeSet := make(map[string]bool)
	for _, p := range toRemove {
		removeSet[p] = true
	}

	var result []string
	for _, p := range perms {
		if !removeSet[p] {
			result = append(result, p)
		}
	}

	return result
}

// CommonPermissions is a list of standard permissions recognized by the
// scheduling core. This can be used for validation and autocomplete.
var CommonPermissions = []string{
	// Employee permissions
	"employees.read",
	"employees.write",
	"employees.*",

	// Shift template / recurring shift permissions
	"shift_templates.read",
	"shift_templates.write",
	"shift_templates.*",
	"recurring_shifts.read",
	"recurring_shifts.write",
	"recurring_shifts.*",

	// Shift permissions
	"shifts.read",
	"shifts.write",
	"shifts.claim",
	"shifts.confirm",
	"shifts.cancel",
	"shifts.*",

	// Holiday profile permissions
	"holiday_profiles.read",
	"holiday_profiles.write",
	"holiday_profiles.*",

	// Absence permissions
	"absences.read",
	"absences.write",
	"absences.approve",
	"care_absences.read",
	"care_absences.write",
	"absences.*",

	// Compliance permissions
	"compliance.read",
	"compliance.settings.write",
	"compliance.*",

	// Payroll permissions
	"payroll.read",
	"payroll.approve",
	"payroll.finalize",
	"payroll.*",

	// Audit permissions
	"audit.read",

	// Admin permissions
	"admin.settings",
	"admin.*",

	// Full access
	"*",
}

// IsValidPermission checks if a permission string is in the known list.
// Allows wildcards and custom permissions not in the standard list.
func IsValidPermission(perm string) bool {
	// Allow wildcard
	if perm == "*" {
		return true
	}

	// Check against known permissions
	for _, p := range CommonPermissions {
		if p == perm {
			return true
		}
	}

	// Allow any permission that follows the pattern resource.action
	parts := strings.Split(perm, ".")
	return len(parts) >= 2
}
