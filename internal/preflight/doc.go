// Package preflight provides readiness checks for the filesystem paths and
// job definitions recsweep depends on.
//
// These checks run in two contexts:
//   - The daemon calls RunAll after loading jobs and logs a warning for every
//     failed check; sweeping continues because a recordings directory may
//     appear later.
//   - The CLI "recsweep check" command uses CheckDefinitions and RunAll to
//     display a readiness table without starting the loop.
package preflight
