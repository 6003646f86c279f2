// SPDX-License-Identifier: MPL-2.0

// Package manifest reads a CUE file that declares commands and turns it into
// command descriptors for the dispatcher.
//
//	name:    "tool"
//	version: "1.0.0"
//	commands: [{
//		name:      "copy"
//		signature: "<source> <dest>"
//		options: [{aliases: ["-f", "--force"]}]
//		script: "cp $CLIROUTE_ARG_SOURCE $CLIROUTE_ARG_DEST"
//	}]
package manifest
