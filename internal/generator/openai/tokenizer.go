package openai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const fallbackEncoding = "cl100k_base"

func init() {
	// Encodings ship embedded in the binary instead of being downloaded on first use.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// encodingFor returns the model's tokenizer, or cl100k_base for models
// tiktoken does not know, such as OpenAI-compatible local servers.
func encodingFor(model string) (*tiktoken.Tiktoken, error) {
	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(fallbackEncoding)
	if err != nil {
		return nil, fmt.Errorf("load %s encoding: %w", fallbackEncoding, err)
	}
	return enc, nil
}
