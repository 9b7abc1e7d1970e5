package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// exerciseGenerator generates exercise catalog entries using the OpenAI API.
type exerciseGenerator struct {
	client       openai.Client
	muscleGroups []string
}

// newExerciseGenerator creates a new exercise generator.
func newExerciseGenerator(openaiAPIKey string, muscleGroups []string) *exerciseGenerator {
	return &exerciseGenerator{
		client:       openai.NewClient(option.WithAPIKey(openaiAPIKey)),
		muscleGroups: muscleGroups,
	}
}

// Generate generates a new exercise based on the given name.
func (eg *exerciseGenerator) Generate(ctx context.Context, name string) (Exercise, error) {
	if name == "" {
		return Exercise{}, errors.New("exercise name cannot be empty")
	}

	prompt := fmt.Sprintf(`Generate a detailed exercise description for "%s".
Include the loading implement (barbell, dumbbell, cable, machine, or bodyweight),
whether it is a compound multi-joint movement, the muscle groups it targets, and
a markdown description following this exact structure:

## Instructions
[Provide 3-5 numbered steps explaining how to perform the exercise correctly]

## Common Mistakes
[List 3-4 common form errors as bullet points]

## Resources
[Include 2-3 placeholder links for videos and guides]

Important guidelines:
- Instructions should be clear, concise, and focus on proper form
- Use simple, direct language that beginners can understand
- Highlight safety considerations where relevant
- For the Resources section, use placeholder URLs (https://example.com/resource-name)

The description should be comprehensive yet concise, totaling around 150-200 words.`, name)

	schemaParam := shared.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "exercise",
		Description: openai.String("Detailed information about a fitness exercise"),
		Schema:      exerciseJSONSchema{muscleGroups: eg.muscleGroups},
		Strict:      openai.Bool(true),
	}

	chat, err := eg.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Model: shared.ChatModelGPT4o,
	})
	if err != nil {
		return Exercise{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return Exercise{}, errors.New("chat completion returned no choices")
	}

	var exercise Exercise
	if err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &exercise); err != nil {
		return Exercise{}, fmt.Errorf("parse exercise response: %w", err)
	}

	if exercise.Name == "" || exercise.Equipment == "" || exercise.DescriptionMarkdown == "" {
		return Exercise{}, errors.New("generated exercise is missing required fields")
	}
	if len(exercise.MuscleGroups) == 0 {
		return Exercise{}, errors.New("generated exercise has no muscle groups")
	}
	if err = eg.validateMuscleGroups(exercise.MuscleGroups); err != nil {
		return Exercise{}, fmt.Errorf("validate muscle groups: %w", err)
	}

	// New exercises get their ID from the database on insert.
	exercise.ID = -1

	return exercise, nil
}

// validateMuscleGroups checks that all muscle groups are in the allowed list.
func (eg *exerciseGenerator) validateMuscleGroups(groups []string) error {
	for _, group := range groups {
		if !slices.Contains(eg.muscleGroups, group) {
			return fmt.Errorf("invalid muscle group %q", group)
		}
	}
	return nil
}
