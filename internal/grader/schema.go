package grader

import "github.com/keiko-edu/llm-quiz/internal/llm"

// ValidateQuestionSchema is the response contract for question validation.
var ValidateQuestionSchema = &llm.Schema{
	Name:        "validate-question",
	Description: "Judgment on whether a quiz question and answer are valid and acceptable",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_valid": map[string]any{
				"type":        "boolean",
				"description": "Whether the question is valid and acceptable",
			},
			"issues": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
					"enum": []any{IssueHeavyMath, IssuePromptInjection, IssueAnswerQuality, IssueContextMismatch},
				},
				"description": "Specific validation issues found. Empty array when valid.",
			},
			"confidence": map[string]any{
				"type":        "string",
				"enum":        []any{"HIGH", "MEDIUM", "LOW"},
				"description": "Confidence in the validation decision",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "Brief explanation of the validation decision",
			},
		},
		"required":             []any{"is_valid", "issues", "confidence", "reason"},
		"additionalProperties": false,
	},
}

// RevisionGuidanceSchema is the response contract for revision guidance.
var RevisionGuidanceSchema = &llm.Schema{
	Name:        "revision-guidance",
	Description: "A concrete suggestion for improving a quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"suggestion": map[string]any{
				"type":        "string",
				"description": "One actionable suggestion for revising the question or answer",
			},
		},
		"required":             []any{"suggestion"},
		"additionalProperties": false,
	},
}

// AnswerQuestionSchema is the response contract for the quiz model's attempt.
var AnswerQuestionSchema = &llm.Schema{
	Name:        "answer-question",
	Description: "An answer to a quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "Concise but thorough answer to the question, at most 300 words",
			},
		},
		"required":             []any{"answer"},
		"additionalProperties": false,
	},
}

// EvaluateAnswerSchema is the response contract for answer evaluation.
var EvaluateAnswerSchema = &llm.Schema{
	Name:        "evaluate-answer",
	Description: "Evaluation of a model's answer against the expected answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict": map[string]any{
				"type":        "string",
				"enum":        []any{"CORRECT", "INCORRECT"},
				"description": "Whether the model's answer matches the expected answer",
			},
			"stumped": map[string]any{
				"type":        "boolean",
				"description": "True if the model failed to reproduce the expected answer (the student wins)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief explanation of the evaluation decision",
			},
			"confidence": map[string]any{
				"type":        "string",
				"enum":        []any{"HIGH", "MEDIUM", "LOW"},
				"description": "Confidence level in the evaluation",
			},
		},
		"required":             []any{"verdict", "stumped", "explanation", "confidence"},
		"additionalProperties": false,
	},
}
