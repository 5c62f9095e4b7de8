// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction layer for docrawl.
//
// This package defines the ChunkStore interface that decouples chunk
// persistence from the pipeline. Two backends are provided:
//
//   - storage/badger: local BadgerDB store, the default
//   - storage/postgres: remote Postgres store with a pgvector embedding column
//
// # Constructor Return Type Pattern
//
// Public backend constructors return the storage.ChunkStore interface to
// enforce abstraction and keep backends swappable:
//
//	store, err := badger.NewChunkStore(backend)  // returns storage.ChunkStore
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Thread Safety
//
// All ChunkStore implementations must be thread-safe; the ingestion pipeline
// issues concurrent independent writes keyed by (url, chunk_number), so no
// cross-chunk transaction or lock is needed.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
