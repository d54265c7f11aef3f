// SPDX-License-Identifier: MPL-2.0

package lint

// suppressedChecks are analyzer checks that are silenced on every run. The
// list is deliberate and literal: each entry was reviewed and found to be
// either stylistic churn or incompatible with the codebase's conventions.
// Additions need a short rationale in the comment.
var suppressedChecks = []string{
	// Struct field reordering breaks wire-format readability.
	"structure_field_order",
	// The codebase uses explicit returns throughout.
	"needless_return",
	// Module-level constants are grouped by domain, not usage.
	"unused_constant",
	// Generated bindings trip this constantly.
	"too_many_arguments",
	// Conflicts with the project's error wrapping style.
	"redundant_error_context",
	// Vendored headers use their upstream naming.
	"non_snake_case_include",
}

// SuppressionArgs renders the curated list as analyzer arguments, one
// "-A <check>" pair per entry.
func SuppressionArgs() []string {
	args := make([]string, 0, len(suppressedChecks)*2)
	for _, check := range suppressedChecks {
		args = append(args, "-A", check)
	}
	return args
}
