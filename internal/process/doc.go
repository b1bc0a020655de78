// Package process runs external commands and signals processes for casstest.
//
// Run executes an argument vector and hands back its captured output and
// exit code without judging either. ReadPIDFile, Kill and Alive operate on
// the detached server through the pid it recorded. WaitReady polls a
// readiness check for callers that want to block until the server answers.
package process
