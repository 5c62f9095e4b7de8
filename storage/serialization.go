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


package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/docrawl/core"
)

// Field serializers for the chunk record. Timestamps are stored as
// microsecond Unix values.
var (
	embeddingMUS = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS  = ord.NewMapSer[string, string](ord.String, ord.String)
)

// ChunkMUS is the MUS serializer for core.Chunk. Fields are encoded in
// declaration order; changing the order breaks stored data.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

// Marshal encodes the chunk into bs and returns the number of bytes written.
// bs must be at least Size(chunk) bytes long.
func (chunkMUS) Marshal(chunk core.Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(chunk.URL, bs)
	n += varint.Int.Marshal(chunk.ChunkNumber, bs[n:])
	n += ord.String.Marshal(chunk.Title, bs[n:])
	n += ord.String.Marshal(chunk.Summary, bs[n:])
	n += ord.String.Marshal(chunk.Content, bs[n:])
	n += metadataMUS.Marshal(chunk.Metadata, bs[n:])
	n += embeddingMUS.Marshal(chunk.Embedding, bs[n:])
	n += varint.Int64.Marshal(chunk.CreatedAt.UnixMicro(), bs[n:])
	return n
}

// Unmarshal decodes a chunk from bs.
func (chunkMUS) Unmarshal(bs []byte) (chunk core.Chunk, n int, err error) {
	var n1 int

	chunk.URL, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}

	chunk.ChunkNumber, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	chunk.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	chunk.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	chunk.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	chunk.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	chunk.Embedding, n1, err = embeddingMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var createdAt int64
	createdAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	chunk.CreatedAt = time.UnixMicro(createdAt).UTC()

	return
}

// Size returns the encoded size of the chunk in bytes.
func (chunkMUS) Size(chunk core.Chunk) (size int) {
	size = ord.String.Size(chunk.URL)
	size += varint.Int.Size(chunk.ChunkNumber)
	size += ord.String.Size(chunk.Title)
	size += ord.String.Size(chunk.Summary)
	size += ord.String.Size(chunk.Content)
	size += metadataMUS.Size(chunk.Metadata)
	size += embeddingMUS.Size(chunk.Embedding)
	size += varint.Int64.Size(chunk.CreatedAt.UnixMicro())
	return size
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, ChunkMUS.Size(*chunk))
	ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}
