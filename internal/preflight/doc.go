// Package preflight provides readiness checks for the directory roles showsort
// works with.
//
// The CLI "showsort status" command renders RunAll's results, and the run and
// reconcile commands refuse to start when a check fails. Hard links and
// renames only work within one filesystem, so the roles are also checked for
// sharing a device.
package preflight
