// Package testsupport holds helpers shared by package tests: temp-dir backed
// configs and small filesystem assertions.
package testsupport
