// SPDX-License-Identifier: MPL-2.0

// Package runtime executes manifest scripts in the embedded mvdan/sh
// interpreter. Bound arguments reach the script as positional parameters and
// as CLIROUTE_* environment variables.
package runtime
