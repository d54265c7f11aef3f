// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting: ActionableError carries
// operation/resource/suggestion context for one failure, and the Issue catalog
// holds longer markdown help texts rendered with glamour for the handful of
// situations that need a full explanation.
package issue
