// Package testinfra starts throwaway Postgres and Redis containers for the
// integration tests. Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// Tests skip themselves when no Docker daemon is reachable.
package testinfra
