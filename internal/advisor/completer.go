package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// Inference параметры генерации
type Inference struct {
	MaxTokens   int32
	Temperature float32
}

// Completer отправляет промпт модели и возвращает текст ответа
type Completer interface {
	Complete(ctx context.Context, prompt string, inf Inference) (string, error)
}

// StreamConverser часть bedrockruntime.Client, нужная для потокового ответа
type StreamConverser interface {
	ConverseStream(ctx context.Context, params *bedrockruntime.ConverseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error)
}

// BedrockCompleter вызывает Converse Stream API Bedrock
type BedrockCompleter struct {
	client  StreamConverser
	modelID string
}

func NewBedrockCompleter(client StreamConverser, modelID string) *BedrockCompleter {
	return &BedrockCompleter{client: client, modelID: modelID}
}

// Complete собирает текстовые дельты потока в одну строку
func (c *BedrockCompleter) Complete(ctx context.Context, prompt string, inf Inference) (string, error) {
	out, err := c.client.ConverseStream(ctx, &bedrockruntime.ConverseStreamInput{
		ModelId: aws.String(c.modelID),
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(inf.MaxTokens),
			Temperature: aws.Float32(inf.Temperature),
		},
	})
	if err != nil {
		return "", fmt.Errorf("converse stream: %w", err)
	}

	stream := out.GetStream()
	defer stream.Close()

	var sb strings.Builder
	for event := range stream.Events() {
		delta, ok := event.(*types.ConverseStreamOutputMemberContentBlockDelta)
		if !ok {
			continue
		}
		if text, ok := delta.Value.Delta.(*types.ContentBlockDeltaMemberText); ok {
			sb.WriteString(text.Value)
		}
	}

	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("read stream: %w", err)
	}

	return sb.String(), nil
}
