/*
Package session serializes access to persisted visualizer sessions.

A Manager wraps a ports.SessionStore with per-session in-process mutexes and,
when configured, a distributed lock so that read-modify-write cycles issued by
concurrent HTTP requests (or replicas) never lose updates.
*/
package session
