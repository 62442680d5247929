// Package platform hides the OS differences the settings store cares
// about: permission bits, which Windows ignores, and locating the
// directory of the running executable.
package platform
