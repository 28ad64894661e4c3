package chunker

import (
	"strconv"

	"rag/internal/domain"
)

func newChunk(documentID string, idx int, text string) domain.Chunk {
	return domain.Chunk{
		DocumentID: documentID,
		ChunkID:    documentID + ":" + strconv.Itoa(idx),
		Text:       text,
		Index:      idx,
	}
}
