package model

import (
	"github.com/pkoukk/tiktoken-go"
)

// CountTokens estimates the token footprint of a prompt. Any chat-compatible
// encoding works here, the count is only logged.
func CountTokens(text string) (int, error) {
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
