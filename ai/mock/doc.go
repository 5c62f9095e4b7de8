// Package mock provides test doubles for the ai interfaces.
//
// The mocks use function fields for behavior injection and produce
// deterministic embeddings by default, enabling tests without external
// AI services.
package mock
