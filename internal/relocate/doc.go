// Package relocate moves or hard-links a single file to a destination path
// without ever overwriting a distinct file or deleting the last copy of one.
//
// Relocate is idempotent: repeating a relocation that already happened is a
// no-op, and a source that is merely a second hard link to the destination is
// collapsed by removing the redundant link. Pretend mode logs the intended
// action and leaves the filesystem untouched.
package relocate
